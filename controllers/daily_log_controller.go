package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/faisal-gif/project-daily-log/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DailyLogController struct {
	Logs *services.LogService
}

func NewDailyLogController(logs *services.LogService) *DailyLogController {
	return &DailyLogController{Logs: logs}
}

// GET /user/daily-logs?page=1
func (dc *DailyLogController) Index(c *gin.Context) {
	userID := c.GetUint("userID")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	logs, total, err := dc.Logs.List(c.Request.Context(), userID, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lastPage := int(total) / services.LogsPerPage
	if int(total)%services.LogsPerPage != 0 || lastPage == 0 {
		lastPage++
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     logs,
		"page":     page,
		"perPage":  services.LogsPerPage,
		"total":    total,
		"lastPage": lastPage,
	})
}

type StoreLogInput struct {
	Date  string               `json:"date"` // YYYY-MM-DD, defaults to today
	Items []services.ItemDraft `json:"items" binding:"required,min=1"`
}

// POST /user/daily-logs
func (dc *DailyLogController) Store(c *gin.Context) {
	userID := c.GetUint("userID")

	var input StoreLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dailyLog, err := dc.Logs.StoreBatch(c.Request.Context(), userID, input.Date, input.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dailyLog)
}

// GET /user/daily-logs/:id
func (dc *DailyLogController) Show(c *gin.Context) {
	userID := c.GetUint("userID")
	logID, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	dailyLog, err := dc.Logs.Get(c.Request.Context(), userID, logID)
	if err != nil {
		respondLogError(c, err)
		return
	}
	c.JSON(http.StatusOK, dailyLog)
}

// PUT /user/daily-logs/:id/items/:itemId
func (dc *DailyLogController) UpdateItem(c *gin.Context) {
	userID := c.GetUint("userID")
	logID, err1 := paramUint(c, "id")
	itemID, err2 := paramUint(c, "itemId")
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var patch services.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := dc.Logs.UpdateItem(c.Request.Context(), userID, logID, itemID, patch)
	if err != nil {
		respondLogError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DELETE /user/daily-logs/:id/items/:itemId
func (dc *DailyLogController) DeleteItem(c *gin.Context) {
	userID := c.GetUint("userID")
	logID, err1 := paramUint(c, "id")
	itemID, err2 := paramUint(c, "itemId")
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := dc.Logs.DeleteItem(c.Request.Context(), userID, logID, itemID); err != nil {
		respondLogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

// DELETE /user/daily-logs/:id
func (dc *DailyLogController) Destroy(c *gin.Context) {
	userID := c.GetUint("userID")
	logID, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	if err := dc.Logs.DeleteLog(c.Request.Context(), userID, logID); err != nil {
		respondLogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "log deleted"})
}

func paramUint(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(v), err
}

// Missing rows (including rows owned by someone else) are a 404,
// never an empty substitute.
func respondLogError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
