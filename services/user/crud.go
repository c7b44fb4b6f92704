package user

import (
	"fmt"
	"sync"
	"time"

	userRepo "medibook/database/repository/user"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GetUser retrieves a user by ID.
func (s *DefaultUserService) GetUser(id string) (*models.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &NotFoundError{ID: id}
	}
	return u, nil
}

// ListUsers returns a filtered page of users.
func (s *DefaultUserService) ListUsers(filter userRepo.ListFilter) ([]models.User, models.PageInfo, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	users, total, err := s.Repo.List(filter)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	return users, models.NewPageInfo(len(users), total, filter.Page, filter.Limit), nil
}

// UpdateProfile applies the mutable profile fields.
func (s *DefaultUserService) UpdateProfile(req models.UserUpdateRequest) (*models.User, error) {
	set := bson.M{"updated_at": time.Now()}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Contact != "" {
		set["contact"] = req.Contact
	}
	if req.Address != "" {
		set["address"] = req.Address
	}
	if req.City != "" {
		set["city"] = req.City
	}
	if req.PostalCode != "" {
		set["postal_code"] = req.PostalCode
	}
	if req.ProfilePicture != "" {
		set["profile_picture"] = req.ProfilePicture
	}

	if err := s.Repo.UpdateWithDocument(req.ID, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return s.GetUser(req.ID)
}

// DeleteUser soft-deletes an account by marking its status.
func (s *DefaultUserService) DeleteUser(id string) error {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return &NotFoundError{ID: id}
	}
	return s.Repo.UpdateWithDocument(id, bson.M{"$set": bson.M{
		"status":     models.StatusDelete,
		"updated_at": time.Now(),
	}})
}

func validStatus(status string) bool {
	switch status {
	case models.StatusActive, models.StatusInactive, models.StatusSuspend,
		models.StatusDelete, models.StatusPending, models.StatusRejected:
		return true
	}
	return false
}

// UpdateStatus changes an account's lifecycle status. Activation sends a
// best-effort notification e-mail.
func (s *DefaultUserService) UpdateStatus(id, status string) (*models.User, error) {
	if !validStatus(status) {
		return nil, &ValidationError{Fields: map[string]string{"status": "invalid status"}}
	}

	if err := s.Repo.UpdateWithDocument(id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}}); err != nil {
		return nil, err
	}

	u, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if status == models.StatusActive {
		text := fmt.Sprintf("Hi %s, your account is active now.", u.Name)
		if err := s.Mailer.SendText(u.Email, "Account Activated", text); err != nil {
			s.Logger.Warn("activation email not sent", zap.String("user_id", u.ID), zap.Error(err))
		}
	}
	return u, nil
}

// DashboardStats aggregates the admin dashboard counters. The three reads
// are independent and run concurrently.
func (s *DefaultUserService) DashboardStats() (*models.DashboardStats, error) {
	var (
		wg    sync.WaitGroup
		stats models.DashboardStats
		errs  [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		stats.TotalUsers, stats.UsersByStatus, errs[0] = s.Repo.CountByStatus()
	}()
	go func() {
		defer wg.Done()
		stats.TotalBookings, stats.BookingRevenue, errs[1] = s.BookingRepo.Stats()
	}()
	go func() {
		defer wg.Done()
		stats.TotalTests, stats.TestsByType, errs[2] = s.TestRepo.CountByType()
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return &stats, nil
}
