package workflow

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"careerconnect/internal/models"
)

const qualificationThreshold = 0.85

// DefaultScorer is the naive scoring stub: a base score plus credit for each
// uploaded document and a fuzzy-match bonus between the course requirements
// and the student's document names.
func DefaultScorer(profile *models.User, docs []models.Document, course *models.Course) *float64 {
	score := 50.0
	for _, d := range docs {
		if d.Uploaded {
			score += 10
		}
	}
	if course.Requirements != "" {
		metric := metrics.NewJaroWinkler()
		best := 0.0
		for _, d := range docs {
			sim := strutil.Similarity(strings.ToLower(d.Name), strings.ToLower(course.Requirements), metric)
			if sim > best {
				best = sim
			}
		}
		score += best * 20
	}
	if score > 100 {
		score = 100
	}
	return &score
}

// DefaultQualifier gates job applications: the required document set must be
// uploaded, and when the job names qualifications, at least one of the
// student's documents has to fuzzy-match a qualification line.
func DefaultQualifier(profile *models.User, docs []models.Document, job *models.Job) bool {
	if !hasRequiredDocuments(docs) {
		return false
	}
	quals := strings.TrimSpace(job.Qualifications)
	if quals == "" {
		return true
	}

	metric := metrics.NewJaroWinkler()
	for _, line := range strings.Split(quals, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		for _, d := range docs {
			if !d.Uploaded {
				continue
			}
			if strutil.Similarity(strings.ToLower(d.Name), line, metric) >= qualificationThreshold {
				return true
			}
			if strings.Contains(line, string(d.Type)) {
				return true
			}
		}
	}
	return false
}
