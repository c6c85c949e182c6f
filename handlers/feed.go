package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"inviteshare/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
)

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// InvitationEvent is pushed to the owner and the reviewer of the changed
// invitation so their cached views can be refreshed.
type InvitationEvent struct {
	Action     string            `json:"action"`
	Invitation models.Invitation `json:"invitation"`
}

// sendFunc returns true if data was successfully sent
type sendFunc func([]byte) bool

type feedClient struct {
	send sendFunc
}

// feedClients is needed as a user may be connected more than once
type feedClients []*feedClient

var connectedUsers = cmap.New[feedClients]()

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func addClient(email string, fc *feedClient) {
	connectedUsers.Upsert(email, feedClients{fc}, func(exist bool, valueInMap, newValue feedClients) feedClients {
		if exist {
			return append(valueInMap, fc)
		}
		return newValue
	})
}

func removeClient(email string, fc *feedClient) {
	connectedUsers.Upsert(email, feedClients{}, func(exist bool, valueInMap, newValue feedClients) feedClients {
		if !exist {
			return newValue
		}
		for _, oc := range valueInMap {
			if oc == fc {
				continue
			}
			newValue = append(newValue, oc)
		}
		return newValue
	})
}

func notifyInvitation(action string, invitation models.Invitation) {
	data, err := json.Marshal(InvitationEvent{Action: action, Invitation: invitation})
	if err != nil {
		return
	}
	for _, email := range []string{invitation.Owner, invitation.Reviewer} {
		clients, ok := connectedUsers.Get(email)
		if !ok {
			continue
		}
		for _, fc := range clients {
			fc.send(data)
		}
	}
}

// Feed upgrades to a websocket and streams invitation changes affecting the
// given email until the peer goes away.
func Feed(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, Response{"email is required"})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer conn.Close()

	isConnected := true
	client := feedClient{}
	client.send = func(data []byte) bool {
		if !isConnected {
			return false
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Println("write err:", err)
			isConnected = false
			return false
		}
		return true
	}
	addClient(email, &client)
	defer removeClient(email, &client)
	// Main read cycle - we only care about the peer going away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			isConnected = false
			return
		}
	}
}
