package main

import "accountd/internal/app"

// @title           accountd API
// @version         1.0
// @description     User-account backend: registration, login, verification, token refresh and delayed account deletion.
// @BasePath        /
func main() {
	app.Run()
}
