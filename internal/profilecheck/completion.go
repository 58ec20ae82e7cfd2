package profilecheck

import (
	"math"

	"go-portfolio-backend/internal/domain"
)

const completionCategories = 5

// CalculateCompletionPercentage scores presence of data, not validity.
// Each of the five categories adds 20 points.
func CalculateCompletionPercentage(p domain.Profile) int {
	completed := 0

	info := p.PersonalInfo
	if info.Phone != "" || info.Location != "" || info.SocialLinks.LinkedIn != "" || info.SocialLinks.GitHub != "" {
		completed++
	}

	prof := p.Professional
	if prof.Title != "" || prof.Summary != "" || len(prof.Skills) > 0 {
		completed++
	}

	if len(p.Experience) > 0 {
		completed++
	}
	if len(p.Projects) > 0 {
		completed++
	}
	if len(p.Education) > 0 {
		completed++
	}

	return int(math.Round(float64(completed) / completionCategories * 100))
}
