package handlers

// @title Serverless Adapter Demo API
// @version 1.0
// @description Demo application served through the Lambda HTTP adapter

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /

// @tag.name records
// @tag.description Users and collaborators held in memory
