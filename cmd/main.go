package main

import (
    "os"

    "github.com/faisal-gif/project-daily-log/config"
    "github.com/faisal-gif/project-daily-log/routes"
    "github.com/faisal-gif/project-daily-log/utils"
)

func main() {
    config.InitDB()
    utils.InitS3()
    r := routes.SetupRouter()

    port := os.Getenv("PORT")
    if port == "" {
        port = "8080"
    }
    r.Run(":" + port)
}
