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

// InvitationList returns the collection in insertion order with optional
// equality filters. Sorting for display is the client's job.
func InvitationList(c *gin.Context) {
	tx := db.Instance.Order("created_at, id")
	for _, field := range []string{"id", "owner", "reviewer", "status"} {
		if v, ok := c.GetQuery(field); ok {
			tx = tx.Where(field+" = ?", v)
		}
	}
	invitations := []models.Invitation{}
	if tx.Find(&invitations).Error != nil {
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, invitations)
}

func InvitationGet(c *gin.Context) {
	invitation := models.Invitation{}
	err := db.Instance.First(&invitation, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, invitation)
}

func InvitationCreate(c *gin.Context) {
	invitation := models.Invitation{}
	if err := c.ShouldBindJSON(&invitation); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if invitation.ID == "" {
		invitation.ID = uuid.NewString()
	}
	if invitation.CreatedAt.IsZero() {
		invitation.CreatedAt = time.Now()
	}
	if invitation.Status == "" {
		invitation.Status = models.InvitationPending
	}
	if db.Instance.Create(&invitation).Error != nil {
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	notifyInvitation(EventCreated, invitation)
	c.JSON(http.StatusCreated, invitation)
}

func InvitationReplace(c *gin.Context) {
	id := c.Param("id")
	existing := models.Invitation{}
	if errors.Is(db.Instance.First(&existing, "id = ?", id).Error, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	invitation := models.Invitation{}
	if err := c.ShouldBindJSON(&invitation); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	invitation.ID = id
	if db.Instance.Save(&invitation).Error != nil {
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	notifyInvitation(EventUpdated, invitation)
	c.JSON(http.StatusOK, invitation)
}

func InvitationDelete(c *gin.Context) {
	invitation := models.Invitation{}
	err := db.Instance.First(&invitation, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	if err != nil || db.Instance.Delete(&invitation).Error != nil {
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	notifyInvitation(EventDeleted, invitation)
	c.JSON(http.StatusOK, OKResponse)
}
