package services

import (
	"errors"
	"fmt"
	"time"

	"award-management-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplicationService owns the per-application lifecycle: content mutation,
// submit, the generic status update and draft deletion.
type ApplicationService struct {
	db *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

// ApplicationFilter narrows List results. Zero values mean "no filter".
type ApplicationFilter struct {
	AwardCycleID    int
	ApplicantUnitID int
	Status          string
	Title           string
	Skip            int
	Limit           int
}

func (s *ApplicationService) List(filter ApplicationFilter) ([]models.Application, error) {
	query := s.db.Model(&models.Application{})

	if filter.AwardCycleID > 0 {
		query = query.Where("award_cycle_id = ?", filter.AwardCycleID)
	}
	if filter.ApplicantUnitID > 0 {
		query = query.Where("applicant_unit_id = ?", filter.ApplicantUnitID)
	}
	if filter.Status != "" && models.ValidApplicationStatus(filter.Status) {
		query = query.Where("submission_status = ?", filter.Status)
	}
	if filter.Title != "" {
		query = query.Where("title LIKE ?", "%"+filter.Title+"%")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var applications []models.Application
	err := query.Order("created_at DESC").Offset(filter.Skip).Limit(limit).Find(&applications).Error
	return applications, err
}

func (s *ApplicationService) Get(id int) (*models.Application, error) {
	var application models.Application
	if err := s.db.Preload("AwardCycle").Preload("ApplicantUnit").
		First(&application, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &application, nil
}

// ApplicationContent carries the textual project fields shared by create and
// update. Nil pointers on update mean "leave unchanged".
type ApplicationContent struct {
	Title           *string
	Category        *string
	LeaderName      *string
	LeaderTitle     *string
	TeamMembers     *string
	Summary         *string
	TechnicalDetail *string
	InnovationPoint *string
	ApplicationVal  *string
	EconomicBenefit *string
	SocialBenefit   *string
	FinalResult     *string
}

func (c *ApplicationContent) applyTo(app *models.Application) {
	if c.Title != nil {
		app.Title = *c.Title
	}
	if c.Category != nil {
		app.Category = c.Category
	}
	if c.LeaderName != nil {
		app.LeaderName = c.LeaderName
	}
	if c.LeaderTitle != nil {
		app.LeaderTitle = c.LeaderTitle
	}
	if c.TeamMembers != nil {
		app.TeamMembers = c.TeamMembers
	}
	if c.Summary != nil {
		app.Summary = c.Summary
	}
	if c.TechnicalDetail != nil {
		app.TechnicalDetail = c.TechnicalDetail
	}
	if c.InnovationPoint != nil {
		app.InnovationPoint = c.InnovationPoint
	}
	if c.ApplicationVal != nil {
		app.ApplicationVal = c.ApplicationVal
	}
	if c.EconomicBenefit != nil {
		app.EconomicBenefit = c.EconomicBenefit
	}
	if c.SocialBenefit != nil {
		app.SocialBenefit = c.SocialBenefit
	}
	if c.FinalResult != nil {
		app.FinalResult = c.FinalResult
	}
}

// Create opens a new draft for the principal's unit.
func (s *ApplicationService) Create(awardCycleID, applicantUnitID int, content ApplicationContent, p Principal) (*models.Application, error) {
	if !CanCreateApplication(p) {
		return nil, fmt.Errorf("role %s cannot create applications: %w", p.Role, ErrForbidden)
	}
	if content.Title == nil || *content.Title == "" {
		return nil, fmt.Errorf("title is required: %w", ErrValidation)
	}

	var cycle models.AwardCycle
	if err := s.db.First(&cycle, awardCycleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("award cycle %d: %w", awardCycleID, ErrNotFound)
		}
		return nil, err
	}

	stage := models.StageLabels[models.StatusDraft]
	application := models.Application{
		AwardCycleID:    awardCycleID,
		ApplicantUnitID: applicantUnitID,
		ApplicantUserID: &p.UserID,
		Status:          models.StatusDraft,
		CurrentStage:    &stage,
	}
	content.applyTo(&application)

	if err := s.db.Create(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// UpdateContent mutates project fields. Legal only while the application is
// still a draft; everything after submission is immutable for audit.
func (s *ApplicationService) UpdateContent(id int, content ApplicationContent, p Principal) (*models.Application, error) {
	application, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !CanEditApplication(p, application) {
		return nil, fmt.Errorf("application %d: %w", id, ErrForbidden)
	}
	if application.Status != models.StatusDraft {
		return nil, fmt.Errorf("only draft applications can be edited: %w", ErrInvalidState)
	}

	content.applyTo(application)
	now := time.Now()
	application.UpdatedAt = &now

	if err := s.db.Omit(clause.Associations).Save(application).Error; err != nil {
		return nil, err
	}
	return application, nil
}

// Submit moves a draft to submitted, stamping the submission time and the
// fixed stage label. Any other starting status is rejected.
func (s *ApplicationService) Submit(id int, p Principal) (*models.Application, error) {
	application, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !CanEditApplication(p, application) {
		return nil, fmt.Errorf("application %d: %w", id, ErrForbidden)
	}
	if application.Status != models.StatusDraft {
		return nil, fmt.Errorf("only draft applications can be submitted: %w", ErrInvalidState)
	}

	now := time.Now()
	stage := models.StageLabels[models.StatusSubmitted]
	application.Status = models.StatusSubmitted
	application.SubmissionTime = &now
	application.CurrentStage = &stage
	application.UpdatedAt = &now

	if err := s.db.Omit(clause.Associations).Save(application).Error; err != nil {
		return nil, err
	}
	return application, nil
}

// UpdateStatus is the generic staff/committee transition. It accepts any
// target status without checking the forward order of the lifecycle table;
// the stage label is derived from the target. The note travels back to the
// caller only and is not persisted.
func (s *ApplicationService) UpdateStatus(id int, status models.ApplicationStatus, note string, p Principal) (*models.Application, error) {
	if !CanUpdateApplicationStatus(p) {
		return nil, fmt.Errorf("role %s cannot update status: %w", p.Role, ErrForbidden)
	}
	if !models.ValidApplicationStatus(string(status)) {
		return nil, fmt.Errorf("unknown status %q: %w", status, ErrValidation)
	}

	application, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	application.Status = status
	if stage, ok := models.StageLabels[status]; ok {
		application.CurrentStage = &stage
	}
	application.UpdatedAt = &now

	if err := s.db.Omit(clause.Associations).Save(application).Error; err != nil {
		return nil, err
	}
	return application, nil
}

// Delete removes a draft application together with its attachments, reviews,
// recommenders and committee decisions in one transaction. Anything past
// draft is kept for audit and rejected.
func (s *ApplicationService) Delete(id int, p Principal) error {
	application, err := s.Get(id)
	if err != nil {
		return err
	}
	if !CanDeleteApplication(p, application) {
		return fmt.Errorf("application %d: %w", id, ErrForbidden)
	}
	if application.Status != models.StatusDraft {
		return fmt.Errorf("only draft applications can be deleted: %w", ErrInvalidState)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("application_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("application_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("application_id = ?", id).Delete(&models.Recommender{}).Error; err != nil {
			return err
		}
		if err := tx.Where("application_id = ?", id).Delete(&models.CommitteeDecision{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Application{}, id).Error
	})
}

// AddAttachment appends an attachment row. Uploads are allowed in every
// status; they are treated as supplementary evidence collection.
func (s *ApplicationService) AddAttachment(appID int, filename, filepath, fileType string, fileSize int64, description *string, uploadedBy int) (*models.Attachment, error) {
	if _, err := s.Get(appID); err != nil {
		return nil, err
	}

	attachment := models.Attachment{
		ApplicationID: appID,
		Filename:      filename,
		Filepath:      filepath,
		FileSize:      fileSize,
		Description:   description,
		UploadedBy:    &uploadedBy,
		Version:       1,
		UploadTime:    time.Now(),
	}
	if fileType != "" {
		attachment.FileType = &fileType
	}

	if err := s.db.Create(&attachment).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (s *ApplicationService) Attachments(appID int) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := s.db.Where("application_id = ?", appID).Find(&attachments).Error
	return attachments, err
}
