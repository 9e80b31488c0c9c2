// internals/features/realtime/controller/realtime_controller.go
package controller

import (
	"log"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	realtime "smartschool_backend/internals/features/realtime/service"
	reportsService "smartschool_backend/internals/features/reports/service"
)

type RealtimeController struct {
	Hub     *realtime.Hub
	Reports *reportsService.ReportsService
}

func NewRealtimeController(hub *realtime.Hub, reports *reportsService.ReportsService) *RealtimeController {
	return &RealtimeController{Hub: hub, Reports: reports}
}

// clientMessage is what subscribers send over the socket.
type clientMessage struct {
	Action  string     `json:"action"` // subscribe | unsubscribe
	Topic   string     `json:"topic"`  // grades | groups | students | reports
	GradeID *uuid.UUID `json:"grade_id,omitempty"`
	GroupID *uuid.UUID `json:"group_id,omitempty"`
}

// Upgrade guards the websocket endpoint.
func (ctl *RealtimeController) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler runs one connection: a write pump draining the hub's send channel
// and a read loop handling subscribe/unsubscribe frames.
func (ctl *RealtimeController) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := realtime.NewClient()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for payload := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			}
		}()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var msg clientMessage
			if err := sonic.Unmarshal(raw, &msg); err != nil {
				log.Printf("[WARN] realtime: bad client frame: %v", err)
				continue
			}
			ctl.dispatch(client, msg)
		}

		// Unregister closes Send, which ends the write pump.
		ctl.Hub.Unregister(client)
		conn.Close()
		<-done
	})
}

func (ctl *RealtimeController) dispatch(client *realtime.Client, msg clientMessage) {
	topic := resolveTopic(msg)
	if topic == "" {
		return
	}

	switch msg.Action {
	case "subscribe":
		ctl.Hub.Subscribe(client, topic, msg.GradeID, msg.GroupID)
		if topic == realtime.TopicReports {
			stats, err := ctl.Reports.SchoolStats()
			if err != nil {
				log.Printf("[ERROR] realtime: school stats: %v", err)
				return
			}
			ctl.Hub.Emit(realtime.TopicReports, "reports:updated", stats)
		}
	case "unsubscribe":
		ctl.Hub.Unsubscribe(client, topic)
	}
}

// resolveTopic narrows a topic request to the most specific room, matching
// the precedence group > grade > global.
func resolveTopic(msg clientMessage) string {
	switch msg.Topic {
	case realtime.TopicGrades, realtime.TopicReports:
		return msg.Topic
	case realtime.TopicGroups:
		if msg.GradeID != nil {
			return realtime.TopicGroupsOfGrade(*msg.GradeID)
		}
		return realtime.TopicGroups
	case realtime.TopicStudents:
		if msg.GroupID != nil {
			return realtime.TopicStudentsOfGroup(*msg.GroupID)
		}
		if msg.GradeID != nil {
			return realtime.TopicStudentsOfGrade(*msg.GradeID)
		}
		return realtime.TopicStudents
	}
	return ""
}
