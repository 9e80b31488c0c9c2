package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "smartschool_backend/internals/databases"
	gradeModel "smartschool_backend/internals/features/school/grades/model"
	groupModel "smartschool_backend/internals/features/school/groups/model"
	studentModel "smartschool_backend/internals/features/school/students/model"
)

func newHubFixture(t *testing.T) (*Hub, gradeModel.GradeModel, groupModel.GroupModel) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	grade := gradeModel.GradeModel{GradeName: "7th"}
	require.NoError(t, db.Create(&grade).Error)
	group := groupModel.GroupModel{GroupName: "A", GroupGradeID: grade.GradeID}
	require.NoError(t, db.Create(&group).Error)
	require.NoError(t, db.Create(&studentModel.StudentModel{
		StudentFirstName: "Dana",
		StudentLastName:  "Cohen",
		StudentCode:      "st-1",
		StudentGradeID:   grade.GradeID,
		StudentGroupID:   group.GroupID,
		StudentStatus:    studentModel.StatusActive,
	}).Error)

	return NewHub(db), grade, group
}

func receiveEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case payload := <-c.Send:
		var ev Event
		require.NoError(t, sonic.Unmarshal(payload, &ev))
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func drain(c *Client) {
	for {
		select {
		case <-c.Send:
		default:
			return
		}
	}
}

func TestSubscribePushesCurrentSnapshot(t *testing.T) {
	hub, _, _ := newHubFixture(t)
	client := NewClient()

	hub.Subscribe(client, TopicGrades, nil, nil)

	ev := receiveEvent(t, client)
	assert.Equal(t, "grades:updated", ev.Event)
	rows, ok := ev.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 1)
	first, ok := rows[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "7th", first["grade_name"])
	assert.EqualValues(t, 1, first["student_count"])
}

func TestScopedStudentTopicOnlySeesItsGroup(t *testing.T) {
	hub, grade, group := newHubFixture(t)

	otherGroup := groupModel.GroupModel{GroupName: "B", GroupGradeID: grade.GradeID}
	require.NoError(t, hub.DB.Create(&otherGroup).Error)
	require.NoError(t, hub.DB.Create(&studentModel.StudentModel{
		StudentFirstName: "Noam",
		StudentLastName:  "Levi",
		StudentCode:      "st-2",
		StudentGradeID:   grade.GradeID,
		StudentGroupID:   otherGroup.GroupID,
		StudentStatus:    studentModel.StatusActive,
	}).Error)

	client := NewClient()
	hub.Subscribe(client, TopicStudentsOfGroup(group.GroupID), nil, &group.GroupID)

	ev := receiveEvent(t, client)
	assert.Equal(t, "students:updated", ev.Event)
	rows, ok := ev.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, rows, 1)
}

func TestBroadcastReachesSubscribersAndSkipsOthers(t *testing.T) {
	hub, grade, _ := newHubFixture(t)

	subscribed := NewClient()
	unrelated := NewClient()
	hub.Subscribe(subscribed, TopicGrades, nil, nil)
	hub.Subscribe(unrelated, TopicGroups, nil, nil)
	drain(subscribed)
	drain(unrelated)

	hub.BroadcastGradeUpdate(grade.GradeID)

	ev := receiveEvent(t, subscribed)
	assert.Equal(t, "grades:updated", ev.Event)

	select {
	case payload := <-unrelated.Send:
		var got Event
		require.NoError(t, sonic.Unmarshal(payload, &got))
		assert.NotEqual(t, "grades:updated", got.Event)
	default:
		// nothing delivered, also fine
	}
}

func TestUnregisterClosesSendAndLeavesRooms(t *testing.T) {
	hub, _, _ := newHubFixture(t)
	client := NewClient()
	hub.Subscribe(client, TopicGrades, nil, nil)
	drain(client)

	hub.Unregister(client)

	_, open := <-client.Send
	assert.False(t, open)

	hub.mu.RLock()
	_, roomExists := hub.rooms[TopicGrades]
	hub.mu.RUnlock()
	assert.False(t, roomExists)
}

func TestSlowClientIsSkippedNotBlocked(t *testing.T) {
	hub, _, _ := newHubFixture(t)
	client := NewClient()
	hub.Subscribe(client, TopicGrades, nil, nil)

	// Fill the buffer; further emits must not block.
	for i := 0; i < cap(client.Send)+5; i++ {
		hub.Emit(TopicGrades, "grades:updated", i)
	}
	assert.Len(t, client.Send, cap(client.Send))
}
