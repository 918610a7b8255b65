// cmd/authsvc/main.go
package main

import (
	"github.com/ryuga001/MiniOrangeAssessment1/app"
	_ "github.com/ryuga001/MiniOrangeAssessment1/docs"
)

// @title           Auth Service API
// @version         1.0
// @description     Session issuer: registration, credential and social login, token refresh and logout.

// @host      localhost:5000
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.RunAuth()
}
