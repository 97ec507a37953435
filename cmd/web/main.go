// @title           Job Board API
// @version         1.0
// @description     API доски вакансий: компании, вакансии, отклики и уведомления.
// @host            localhost:4000
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"jobboard_backend/internal/app"

	_ "jobboard_backend/docs"
)

func main() {
	app.Run()
}
