package main

// General API documentation for swaggo. Regenerate with
// `swag init -g cmd/pixeld/docs.go -o docs` and build with -tags=swagger.
//
// @title           pixeld API
// @version         1.0
// @description     HTTP API for classical image restoration pipelines.
//
// @contact.name   pixeld maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
