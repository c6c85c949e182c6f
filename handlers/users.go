package handlers

import (
	"errors"
	"net/http"
	"time"

	"inviteshare/db"
	"inviteshare/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func UserList(c *gin.Context) {
	tx := db.Instance.Order("created_at, id")
	if v, ok := c.GetQuery("email"); ok {
		tx = tx.Where("email = ?", v)
	}
	users := []models.User{}
	if tx.Find(&users).Error != nil {
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, users)
}

func UserGet(c *gin.Context) {
	user := models.User{}
	err := db.Instance.First(&user, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, user)
}

func UserCreate(c *gin.Context) {
	user := models.User{}
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if db.Instance.Create(&user).Error != nil {
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func UserReplace(c *gin.Context) {
	id := c.Param("id")
	existing := models.User{}
	if errors.Is(db.Instance.First(&existing, "id = ?", id).Error, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	user := models.User{}
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	user.ID = id
	if db.Instance.Save(&user).Error != nil {
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, user)
}

func UserDelete(c *gin.Context) {
	result := db.Instance.Delete(&models.User{}, "id = ?", c.Param("id"))
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
