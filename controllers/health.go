package controllers

import (
	"net/http"

	"github.com/diggerhq/returns/version"
	"github.com/gin-gonic/gin"
)

func (mc *MainController) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func (mc *MainController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    version.Version,
		"commit_sha": version.Meta,
	})
}
