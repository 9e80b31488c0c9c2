// internals/features/realtime/service/hub.go
//
// Fetch-and-replace push: every relevant mutation re-queries the affected
// collection and re-sends it whole to every subscriber of the topic. Not
// bandwidth-efficient, but subscribers never need reconciliation logic.
package service

import (
	"log"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"

	gradeDTO "smartschool_backend/internals/features/school/grades/dto"
	gradeModel "smartschool_backend/internals/features/school/grades/model"
	groupDTO "smartschool_backend/internals/features/school/groups/dto"
	groupModel "smartschool_backend/internals/features/school/groups/model"
	studentDTO "smartschool_backend/internals/features/school/students/dto"
	studentModel "smartschool_backend/internals/features/school/students/model"
)

const (
	TopicGrades   = "grades"
	TopicGroups   = "groups"
	TopicStudents = "students"
	TopicReports  = "reports"
)

func TopicGroupsOfGrade(gradeID uuid.UUID) string {
	return TopicGroups + ":" + gradeID.String()
}

func TopicStudentsOfGrade(gradeID uuid.UUID) string {
	return TopicStudents + ":grade:" + gradeID.String()
}

func TopicStudentsOfGroup(groupID uuid.UUID) string {
	return TopicStudents + ":group:" + groupID.String()
}

// Event is the frame pushed to subscribers.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Client is one connected websocket peer. The connection's write loop
// drains Send; the hub never writes to the socket directly.
type Client struct {
	Send   chan []byte
	topics map[string]struct{}
}

func NewClient() *Client {
	return &Client{
		Send:   make(chan []byte, 16),
		topics: make(map[string]struct{}),
	}
}

type Hub struct {
	DB *gorm.DB

	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewHub(db *gorm.DB) *Hub {
	return &Hub{
		DB:    db,
		rooms: make(map[string]map[*Client]struct{}),
	}
}

// Unregister removes the client from every room and closes its send
// channel. A disconnected peer's pending pushes are simply dropped.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	for topic := range c.topics {
		if room, ok := h.rooms[topic]; ok {
			delete(room, c)
			if len(room) == 0 {
				delete(h.rooms, topic)
			}
		}
	}
	c.topics = make(map[string]struct{})
	h.mu.Unlock()
	close(c.Send)
}

// Subscribe joins the client to topic and immediately pushes the current
// snapshot of that topic's collection to the whole room.
func (h *Hub) Subscribe(c *Client, topic string, gradeID, groupID *uuid.UUID) {
	h.mu.Lock()
	room, ok := h.rooms[topic]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[topic] = room
	}
	room[c] = struct{}{}
	c.topics[topic] = struct{}{}
	h.mu.Unlock()

	switch {
	case topic == TopicGrades:
		h.pushGrades()
	case topic == TopicGroups:
		h.pushGroups(nil)
	case gradeID != nil && topic == TopicGroupsOfGrade(*gradeID):
		h.pushGroups(gradeID)
	case topic == TopicStudents:
		h.pushStudents(nil, nil)
	case gradeID != nil && topic == TopicStudentsOfGrade(*gradeID):
		h.pushStudents(gradeID, nil)
	case groupID != nil && topic == TopicStudentsOfGroup(*groupID):
		h.pushStudents(nil, groupID)
	}
}

func (h *Hub) Unsubscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.rooms[topic]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, topic)
		}
	}
	delete(c.topics, topic)
}

// Emit pushes one event to every subscriber of topic. Slow clients whose
// send buffer is full are skipped; delivery is best effort.
func (h *Hub) Emit(topic, event string, data interface{}) {
	payload, err := sonic.Marshal(Event{Event: event, Data: data})
	if err != nil {
		log.Printf("[ERROR] realtime: marshal %s: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[topic] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

/* ================= Broadcast on mutation ================= */

// BroadcastGradeUpdate re-queries the grade collection and pushes it to the
// grades topic. Errors are logged and swallowed; the triggering write has
// already committed and is never rolled back for a broadcast failure.
func (h *Hub) BroadcastGradeUpdate(gradeID uuid.UUID) {
	h.pushGrades()
	h.Emit(TopicGrades, "grade:updated", map[string]interface{}{"grade_id": gradeID})
}

func (h *Hub) BroadcastGroupUpdate(groupID uuid.UUID, gradeID *uuid.UUID) {
	if gradeID != nil {
		h.pushGroups(gradeID)
	}
	h.pushGroups(nil)
	h.Emit(TopicGroups, "group:updated", map[string]interface{}{"group_id": groupID})
}

func (h *Hub) BroadcastStudentUpdate(studentID uuid.UUID, groupID, gradeID *uuid.UUID) {
	if groupID != nil {
		h.pushStudents(nil, groupID)
	}
	if gradeID != nil {
		h.pushStudents(gradeID, nil)
	}
	h.pushStudents(nil, nil)
	h.Emit(TopicStudents, "student:updated", map[string]interface{}{"student_id": studentID})
}

/* ================= Collection queries ================= */

// The hub re-runs the same preloaded queries the feature controllers use;
// it cannot call them directly without an import cycle.

func (h *Hub) pushGrades() {
	var rows []gradeModel.GradeModel
	if err := h.DB.
		Preload("Groups").
		Preload("Students").
		Order("grade_name ASC").
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] realtime: query grades: %v", err)
		return
	}
	h.Emit(TopicGrades, "grades:updated", gradeDTO.NewGradeResponses(rows))
}

func (h *Hub) pushGroups(gradeID *uuid.UUID) {
	tx := h.DB.
		Preload("Grade").
		Preload("Teacher").
		Preload("Students").
		Order("group_name ASC")

	topic := TopicGroups
	if gradeID != nil {
		tx = tx.Where("group_grade_id = ?", *gradeID)
		topic = TopicGroupsOfGrade(*gradeID)
	}

	var rows []groupModel.GroupModel
	if err := tx.Find(&rows).Error; err != nil {
		log.Printf("[ERROR] realtime: query groups: %v", err)
		return
	}
	h.Emit(topic, "groups:updated", groupDTO.NewGroupResponses(rows))
}

func (h *Hub) pushStudents(gradeID, groupID *uuid.UUID) {
	tx := h.DB.
		Preload("Grade").
		Preload("Group").
		Order("student_last_name ASC, student_first_name ASC")

	topic := TopicStudents
	switch {
	case groupID != nil:
		tx = tx.Where("student_group_id = ?", *groupID)
		topic = TopicStudentsOfGroup(*groupID)
	case gradeID != nil:
		tx = tx.Where("student_grade_id = ?", *gradeID)
		topic = TopicStudentsOfGrade(*gradeID)
	}

	var rows []studentModel.StudentModel
	if err := tx.Find(&rows).Error; err != nil {
		log.Printf("[ERROR] realtime: query students: %v", err)
		return
	}
	h.Emit(topic, "students:updated", studentDTO.NewStudentResponses(rows))
}
