package handlers

import (
	"net/http"

	"inviteshare/db"
	"inviteshare/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func SessionList(c *gin.Context) {
	sessions := []models.Session{}
	if db.Instance.Find(&sessions).Error != nil {
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func SessionCreate(c *gin.Context) {
	session := models.Session{}
	if err := c.ShouldBindJSON(&session); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if db.Instance.Create(&session).Error != nil {
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func SessionDelete(c *gin.Context) {
	result := db.Instance.Delete(&models.Session{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
