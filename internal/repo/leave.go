package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/leave_management/internal/models"
)

func withComments(db *gorm.DB) *gorm.DB {
	return db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

func normalizeLeave(lr *models.LeaveRequest) {
	if lr.Comments == nil {
		lr.Comments = []models.Comment{}
	}
}

func normalizeLeaves(list []models.LeaveRequest) []models.LeaveRequest {
	if list == nil {
		return []models.LeaveRequest{}
	}
	for i := range list {
		normalizeLeave(&list[i])
	}
	return list
}

func (r *GormRepo) CreateLeave(ctx context.Context, lr *models.LeaveRequest) error {
	if lr.ID == "" {
		lr.ID = uuid.NewString()
	}
	if lr.Status == "" {
		lr.Status = models.StatusPending
	}
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(lr).Error; err != nil {
		return translate(err)
	}
	normalizeLeave(lr)
	return nil
}

func (r *GormRepo) GetLeave(ctx context.Context, id string) (*models.LeaveRequest, error) {
	return getLeave(r.DB.WithContext(ctx), id)
}

func getLeave(db *gorm.DB, id string) (*models.LeaveRequest, error) {
	var lr models.LeaveRequest
	if err := withComments(db).Where("id = ?", id).First(&lr).Error; err != nil {
		return nil, translate(err)
	}
	normalizeLeave(&lr)
	return &lr, nil
}

func (r *GormRepo) ListLeavesByUser(ctx context.Context, userID string) ([]models.LeaveRequest, error) {
	var list []models.LeaveRequest
	err := withComments(r.DB.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at ASC").Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return normalizeLeaves(list), nil
}

func (r *GormRepo) ListLeaves(ctx context.Context) ([]models.LeaveRequest, error) {
	var list []models.LeaveRequest
	err := withComments(r.DB.WithContext(ctx)).
		Order("created_at ASC").Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return normalizeLeaves(list), nil
}

// UpdateLeaveStatus sets the status and appends c (if any) in one transaction.
func (r *GormRepo) UpdateLeaveStatus(ctx context.Context, id string, status models.LeaveStatus, c *models.Comment) (*models.LeaveRequest, error) {
	var out *models.LeaveRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.LeaveRequest{}).Where("id = ?", id).Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if c != nil {
			c.ID = 0
			c.LeaveRequestID = id
			if err := tx.Create(c).Error; err != nil {
				return err
			}
		}
		lr, err := getLeave(tx, id)
		if err != nil {
			return err
		}
		out = lr
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *GormRepo) EditLeave(ctx context.Context, id string, patch models.LeavePatch) (*models.LeaveRequest, error) {
	var out *models.LeaveRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lr, err := getLeave(tx, id)
		if err != nil {
			return err
		}
		if !patch.Empty() {
			patch.Apply(lr)
			if err := tx.Omit(clause.Associations).Save(lr).Error; err != nil {
				return err
			}
		}
		out = lr
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *GormRepo) DeleteLeave(ctx context.Context, id string) error {
	return r.deleteLeaveWhere(ctx, "id = ?", id)
}

func (r *GormRepo) DeleteOwnLeave(ctx context.Context, id, userID string) error {
	return r.deleteLeaveWhere(ctx, "id = ? AND user_id = ?", id, userID)
}

func (r *GormRepo) deleteLeaveWhere(ctx context.Context, query string, args ...any) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lr models.LeaveRequest
		if err := tx.Where(query, args...).First(&lr).Error; err != nil {
			return err
		}
		if err := tx.Where("leave_request_id = ?", lr.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", lr.ID).Delete(&models.LeaveRequest{}).Error
	})
	return translate(err)
}

func (r *GormRepo) DeleteAllLeaves(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("1 = 1").Delete(&models.LeaveRequest{})
		n = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
