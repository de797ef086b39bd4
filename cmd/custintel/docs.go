package main

// General API documentation for swaggo. Regenerate docs/ with
// `swag init -g cmd/custintel/docs.go -o docs` after changing handler annotations.
//
// @title           custintel API
// @version         1.0
// @description     Customer Intelligence inference API: churn, sales forecast, customer segmentation and sentiment.
//
// @contact.name   custintel maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
