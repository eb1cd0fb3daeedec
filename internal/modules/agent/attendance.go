package agent

import (
	"context"
	"errors"
	"math"
	"time"

	"agromart/internal/domain"

	"gorm.io/gorm"
)

// ClockIn opens the agent's working day. The location must fall inside the
// market geofence, the market must be open, and only one record per day is
// allowed.
func (s *Service) ClockIn(ctx context.Context, agentUserID int64, req ClockInRequest) (*domain.AgentAttendance, error) {
	if err := s.requireApproved(ctx, agentUserID); err != nil {
		return nil, err
	}

	if haversineKm(req.Latitude, req.Longitude, marketLatitude, marketLongitude) > geofenceRadiusKm {
		return nil, ErrOutsideGeofence
	}

	now := s.now()
	if now.Hour() < marketOpenHour {
		return nil, ErrBeforeOpening
	}

	date := now.Format("2006-01-02")
	if _, err := s.attendance.GetByAgentAndDate(ctx, agentUserID, date); err == nil {
		return nil, ErrAlreadyClockedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record := &domain.AgentAttendance{
		AgentUserID:      agentUserID,
		Date:             date,
		ClockInTime:      now,
		ClockInLatitude:  req.Latitude,
		ClockInLongitude: req.Longitude,
		ClockInAddress:   req.Address,
		Status:           domain.AttendanceClockedIn,
	}
	if err := s.attendance.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ClockOut closes the day and computes hours worked, rounded to two
// decimals. Clock-out location is recorded but not fenced.
func (s *Service) ClockOut(ctx context.Context, agentUserID int64, req ClockOutRequest) (*domain.AgentAttendance, error) {
	now := s.now()
	date := now.Format("2006-01-02")

	record, err := s.attendance.GetByAgentAndDate(ctx, agentUserID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, err
	}
	if record.Status == domain.AttendanceClockedOut {
		return nil, ErrAlreadyClockedOut
	}

	record.ClockOutTime = &now
	record.ClockOutLatitude = &req.Latitude
	record.ClockOutLongitude = &req.Longitude
	record.ClockOutAddress = req.Address
	record.TotalHoursWorked = roundHours(now.Sub(record.ClockInTime))
	record.Status = domain.AttendanceClockedOut

	if err := s.attendance.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Status reports the agent's current day.
func (s *Service) Status(ctx context.Context, agentUserID int64) (*AttendanceStatus, error) {
	date := s.now().Format("2006-01-02")

	record, err := s.attendance.GetByAgentAndDate(ctx, agentUserID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &AttendanceStatus{Date: date}, nil
		}
		return nil, err
	}

	status := &AttendanceStatus{
		Date:             date,
		ClockedIn:        true,
		ClockedOut:       record.Status == domain.AttendanceClockedOut,
		ClockInTime:      &record.ClockInTime,
		ClockOutTime:     record.ClockOutTime,
		TotalHoursWorked: record.TotalHoursWorked,
		CompletedPickups: record.CompletedPickups,
	}
	return status, nil
}

// History lists past attendance records, newest first.
func (s *Service) History(ctx context.Context, agentUserID int64, limit int) ([]domain.AgentAttendance, error) {
	return s.attendance.ListByAgent(ctx, agentUserID, limit)
}

// RecordPickup bumps the day's completed-pickup counter. The agent must be
// clocked in.
func (s *Service) RecordPickup(ctx context.Context, agentUserID int64) (*domain.AgentAttendance, error) {
	date := s.now().Format("2006-01-02")

	record, err := s.attendance.GetByAgentAndDate(ctx, agentUserID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, err
	}
	if record.Status == domain.AttendanceClockedOut {
		return nil, ErrAlreadyClockedOut
	}

	record.CompletedPickups++
	if err := s.attendance.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
