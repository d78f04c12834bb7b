package service

import (
	"context"

	"volunteer-hub/internal/database"
	"volunteer-hub/internal/model"
	"volunteer-hub/internal/store"
)

var (
	withTx                 = database.WithTx
	createAssignment       = store.CreateAssignment
	updateAssignmentStatus = store.UpdateAssignmentStatus
	createNotification     = store.CreateNotification
)

// AssignTask 建立指派並在同一交易中通知被指派的志工
func AssignTask(ctx context.Context, db database.DB, a *model.Assignment) (*model.Assignment, error) {
	var created *model.Assignment
	err := withTx(ctx, db, func(q database.Querier) error {
		var err error
		created, err = createAssignment(ctx, q, a)
		if err != nil {
			return err
		}
		_, err = createNotification(ctx, q, created.UserID, model.AssignedMessage(created.TaskID), model.NotificationSent)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ChangeAssignmentStatus 更新指派狀態；新狀態為 Completed 時在同一交易中新增一筆完成通知
func ChangeAssignmentStatus(ctx context.Context, db database.DB, assignmentID int, status string) (*model.Assignment, error) {
	var updated *model.Assignment
	err := withTx(ctx, db, func(q database.Querier) error {
		var err error
		updated, err = updateAssignmentStatus(ctx, q, assignmentID, status)
		if err != nil {
			return err
		}
		if status == model.StatusCompleted {
			_, err = createNotification(ctx, q, updated.UserID, model.CompletedMessage(updated.TaskID), model.NotificationSent)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
