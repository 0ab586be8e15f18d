package service

import (
	"strings"

	"github.com/careerconnect/careerconnect/database"
	"github.com/careerconnect/careerconnect/database/model"
	"github.com/careerconnect/careerconnect/logger"
)

type JobService struct{}

// JobInput carries the fields of a new posting.
type JobInput struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Salary      *float64 `json:"salary"`
}

// JobPatch carries the fields of a posting update; nil keeps the value.
type JobPatch struct {
	Title       *string  `json:"title"`
	Company     *string  `json:"company"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	Salary      *float64 `json:"salary"`
}

func (s *JobService) GetJobs() ([]model.Job, error) {
	jobs := make([]model.Job, 0)
	if err := database.GetDB().Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	if err := populatePosters(jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobService) GetJob(id string) (*model.Job, error) {
	var job model.Job
	if err := database.GetDB().Where("id = ?", id).First(&job).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	jobs := []model.Job{job}
	if err := populatePosters(jobs); err != nil {
		return nil, err
	}
	return &jobs[0], nil
}

func (s *JobService) CreateJob(posterID string, in JobInput) (*model.Job, error) {
	job := &model.Job{
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Salary:      in.Salary,
		PostedByID:  posterID,
	}
	if err := validateJob(job); err != nil {
		return nil, err
	}
	if err := database.GetDB().Create(job).Error; err != nil {
		return nil, err
	}
	logger.Infof("job %s created by %s", job.ID, posterID)
	return s.GetJob(job.ID)
}

// UpdateJob merges patch into the stored job. The poster never changes.
func (s *JobService) UpdateJob(id string, patch JobPatch) (*model.Job, error) {
	job, err := s.GetJob(id)
	if err != nil {
		return nil, err
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&job.Title, patch.Title)
	set(&job.Company, patch.Company)
	set(&job.Description, patch.Description)
	set(&job.Location, patch.Location)
	if patch.Salary != nil {
		job.Salary = patch.Salary
	}
	if err := validateJob(job); err != nil {
		return nil, err
	}

	if err := database.GetDB().Save(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) DeleteJob(id string) error {
	res := database.GetDB().Where("id = ?", id).Delete(&model.Job{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func validateJob(job *model.Job) error {
	if job.Title == "" || job.Company == "" || job.Description == "" || job.Location == "" {
		return ErrJobFieldsRequired
	}
	if job.Salary != nil && *job.Salary < 0 {
		return NewValidationError("Salary cannot be negative")
	}
	return nil
}

// populatePosters resolves PostedByID to the poster's public fields. A
// deleted poster leaves Poster nil.
func populatePosters(jobs []model.Job) error {
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.PostedByID)
	}
	refs, err := loadUserRefs(ids)
	if err != nil {
		return err
	}
	for i := range jobs {
		jobs[i].Poster = refs[jobs[i].PostedByID]
	}
	return nil
}

func loadUserRefs(ids []string) (map[string]*model.UserRef, error) {
	out := make(map[string]*model.UserRef)
	ids = uniqueNonEmpty(ids)
	if len(ids) == 0 {
		return out, nil
	}
	var refs []model.UserRef
	if err := database.GetDB().Select("id", "name", "email").Where("id IN ?", ids).Find(&refs).Error; err != nil {
		return nil, err
	}
	for i := range refs {
		out[refs[i].ID] = &refs[i]
	}
	return out, nil
}

func loadJobRefs(ids []string) (map[string]*model.JobRef, error) {
	out := make(map[string]*model.JobRef)
	ids = uniqueNonEmpty(ids)
	if len(ids) == 0 {
		return out, nil
	}
	var refs []model.JobRef
	if err := database.GetDB().Select("id", "title", "company").Where("id IN ?", ids).Find(&refs).Error; err != nil {
		return nil, err
	}
	for i := range refs {
		out[refs[i].ID] = &refs[i]
	}
	return out, nil
}

func uniqueNonEmpty(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
