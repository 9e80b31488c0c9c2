// internals/features/audit/service/audit_service.go
//
// The audit recorder backs every entity mutation in the system: "created"
// and "deleted" events carry the whole serialized entity, updates carry one
// row per changed scalar field. Callers run Record* inside the same
// transaction as the mutation they describe.
package service

import (
	"sort"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditModel "smartschool_backend/internals/features/audit/model"
)

// FindAll returns at most this many rows, newest first.
const findAllLimit = 1000

type Recorder struct {
	DB *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{DB: db}
}

// Record appends one immutable audit row using tx (pass the mutation's
// transaction so the row commits or rolls back together with it).
func (r *Recorder) Record(tx *gorm.DB, entity string, entityID uuid.UUID, field string, oldValue, newValue *string, userID uuid.UUID) (*auditModel.AuditLogModel, error) {
	row := &auditModel.AuditLogModel{
		AuditLogEntity:   entity,
		AuditLogEntityID: entityID,
		AuditLogField:    field,
		AuditLogOldValue: oldValue,
		AuditLogNewValue: newValue,
		AuditLogUserID:   userID,
	}
	if err := tx.Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// RecordCreated stores the whole serialized entity as the new value under
// the literal field name "created".
func (r *Recorder) RecordCreated(tx *gorm.DB, entity string, entityID uuid.UUID, created interface{}, userID uuid.UUID) error {
	snapshot, err := serialize(created)
	if err != nil {
		return err
	}
	_, err = r.Record(tx, entity, entityID, auditModel.FieldCreated, nil, &snapshot, userID)
	return err
}

// RecordDeleted stores the whole serialized pre-image as the old value under
// the literal field name "deleted".
func (r *Recorder) RecordDeleted(tx *gorm.DB, entity string, entityID uuid.UUID, preImage interface{}, userID uuid.UUID) error {
	snapshot, err := serialize(preImage)
	if err != nil {
		return err
	}
	_, err = r.Record(tx, entity, entityID, auditModel.FieldDeleted, &snapshot, nil, userID)
	return err
}

// RecordChanges diffs two AuditFields maps and appends one row per field
// whose stringified value differs. Field order is deterministic.
func (r *Recorder) RecordChanges(tx *gorm.DB, entity string, entityID uuid.UUID, oldFields, newFields map[string]string, userID uuid.UUID) (int, error) {
	changed := DiffFields(oldFields, newFields)
	for _, field := range changed {
		oldVal, newVal := oldFields[field], newFields[field]
		if _, err := r.Record(tx, entity, entityID, field, &oldVal, &newVal, userID); err != nil {
			return 0, err
		}
	}
	return len(changed), nil
}

// DiffFields returns the sorted names of fields whose values differ between
// the two maps. Only fields enumerated by the models' AuditFields reach
// here, so comparison is plain string inequality.
func DiffFields(oldFields, newFields map[string]string) []string {
	changed := make([]string, 0, len(newFields))
	for field, newVal := range newFields {
		if oldVal, ok := oldFields[field]; !ok || oldVal != newVal {
			changed = append(changed, field)
		}
	}
	sort.Strings(changed)
	return changed
}

// FindByEntity returns all rows for one entity, newest first, with the
// acting user preloaded for display names. Rows of one multi-field update
// share a timestamp, so the field name breaks the tie and keeps the read
// order stable.
func (r *Recorder) FindByEntity(entity string, entityID uuid.UUID) ([]auditModel.AuditLogModel, error) {
	var rows []auditModel.AuditLogModel
	err := r.DB.
		Where("audit_log_entity = ? AND audit_log_entity_id = ?", entity, entityID).
		Order("audit_log_timestamp DESC, audit_log_field ASC").
		Preload("User").
		Find(&rows).Error
	return rows, err
}

// FindAll returns the most recent rows across all entities, newest first,
// hard-capped rather than paginated.
func (r *Recorder) FindAll() ([]auditModel.AuditLogModel, error) {
	var rows []auditModel.AuditLogModel
	err := r.DB.
		Order("audit_log_timestamp DESC, audit_log_field ASC").
		Limit(findAllLimit).
		Preload("User").
		Find(&rows).Error
	return rows, err
}

func serialize(v interface{}) (string, error) {
	b, err := sonic.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
