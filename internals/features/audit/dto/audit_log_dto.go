package dto

import (
	"time"

	"github.com/google/uuid"

	model "smartschool_backend/internals/features/audit/model"
)

type AuditLogResponse struct {
	AuditLogID        uuid.UUID `json:"audit_log_id"`
	AuditLogEntity    string    `json:"audit_log_entity"`
	AuditLogEntityID  uuid.UUID `json:"audit_log_entity_id"`
	AuditLogField     string    `json:"audit_log_field"`
	AuditLogOldValue  *string   `json:"audit_log_old_value,omitempty"`
	AuditLogNewValue  *string   `json:"audit_log_new_value,omitempty"`
	AuditLogUserID    uuid.UUID `json:"audit_log_user_id"`
	UserName          string    `json:"user_name,omitempty"`
	AuditLogTimestamp time.Time `json:"audit_log_timestamp"`
}

func NewAuditLogResponse(m *model.AuditLogModel) *AuditLogResponse {
	resp := &AuditLogResponse{
		AuditLogID:        m.AuditLogID,
		AuditLogEntity:    m.AuditLogEntity,
		AuditLogEntityID:  m.AuditLogEntityID,
		AuditLogField:     m.AuditLogField,
		AuditLogOldValue:  m.AuditLogOldValue,
		AuditLogNewValue:  m.AuditLogNewValue,
		AuditLogUserID:    m.AuditLogUserID,
		AuditLogTimestamp: m.AuditLogTimestamp,
	}
	if m.User != nil {
		resp.UserName = m.User.UserName
	}
	return resp
}

func NewAuditLogResponses(rows []model.AuditLogModel) []*AuditLogResponse {
	resp := make([]*AuditLogResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewAuditLogResponse(&rows[i]))
	}
	return resp
}
