package profilecheck_test

import (
	"strings"
	"testing"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/profilecheck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() domain.Profile {
	return domain.Profile{
		PersonalInfo: domain.PersonalInfo{
			Phone:    "9988776655",
			Location: "Lisbon, Portugal",
			SocialLinks: domain.SocialLinks{
				LinkedIn: "https://www.linkedin.com/in/ana-silva",
				GitHub:   "https://github.com/anasilva",
			},
		},
		Professional: domain.Professional{
			Title:   "Backend Engineer",
			Summary: "Backend engineer with eight years of experience building payment and logistics platforms.",
			Skills:  []string{"Go", "PostgreSQL", "Kubernetes"},
		},
		Experience: []domain.Experience{{
			Title:     "Senior Engineer",
			Company:   "Acme Logistics",
			Location:  "Remote",
			StartDate: "2020-01",
			EndDate:   "2023-06",
		}},
		Education: []domain.Education{{
			Degree:    "BSc Computer Science",
			School:    "University of Lisbon",
			StartDate: "2012-09",
			EndDate:   "2016-07",
		}},
		Projects: []domain.Project{{
			Title:       "Route Planner",
			Description: "Open source vehicle routing engine for small fleets.",
			Skills:      []string{"Go"},
			URL:         "https://routeplanner.dev",
			GitHubURL:   "https://github.com/anasilva/route-planner",
			Featured:    true,
		}},
	}
}

func TestVacuousValidity(t *testing.T) {
	t.Run("Should treat every empty section as valid without data", func(t *testing.T) {
		results := map[string]profilecheck.SectionResult{
			"personal":     profilecheck.ValidatePersonalInfo(domain.PersonalInfo{}),
			"professional": profilecheck.ValidateProfessional(domain.Professional{}),
			"experience":   profilecheck.ValidateExperience(nil),
			"education":    profilecheck.ValidateEducation([]domain.Education{}),
			"projects":     profilecheck.ValidateProjects(nil),
		}
		for name, r := range results {
			assert.True(t, r.IsValid, name)
			assert.False(t, r.HasData, name)
			assert.Empty(t, r.Errors, name)
		}
	})

	t.Run("Should skip all-empty entries next to populated ones", func(t *testing.T) {
		entries := []domain.Experience{
			{},
			{Title: "Engineer", Company: "Globex", StartDate: "2021-03", Current: true},
		}
		r := profilecheck.ValidateExperience(entries)
		assert.True(t, r.HasData)
		assert.True(t, r.IsValid)
		assert.Empty(t, r.Errors)
	})

	t.Run("Should not count a lone current flag as entry data", func(t *testing.T) {
		r := profilecheck.ValidateExperience([]domain.Experience{{Current: true}})
		assert.True(t, r.IsValid)
	})
}

func TestRequiredFieldShortCircuit(t *testing.T) {
	cases := []struct {
		name  string
		entry domain.Experience
	}{
		{"Only company set", domain.Experience{Company: "Initech"}},
		{"Everything but title", domain.Experience{Company: "Initech", Location: "Austin", StartDate: "2019-01", EndDate: "2020-01", Description: "Reports"}},
		{"Malformed dates", domain.Experience{Company: "Initech", StartDate: "January", EndDate: "later"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := profilecheck.ValidateExperience([]domain.Experience{tc.entry})
			rule, ok := profilecheck.Rules[domain.SectionExperience].Get("title")
			require.True(t, ok)
			assert.Equal(t, []string{rule.Message}, r.Errors["experience_0_title"])
			assert.False(t, r.IsValid)
		})
	}
}

func TestConditionalRequiredness(t *testing.T) {
	base := domain.Experience{Title: "Engineer", Company: "Globex", StartDate: "2021-03"}

	t.Run("Should not require end date for the current role", func(t *testing.T) {
		entry := base
		entry.Current = true
		r := profilecheck.ValidateExperience([]domain.Experience{entry})
		assert.NotContains(t, r.Errors, "experience_0_endDate")
		assert.True(t, r.IsValid)
	})

	t.Run("Should require end date for a past role", func(t *testing.T) {
		r := profilecheck.ValidateExperience([]domain.Experience{base})
		assert.Equal(t, []string{"End date is required unless this is your current role"}, r.Errors["experience_0_endDate"])
		assert.False(t, r.IsValid)
	})

	t.Run("Should still format-check an end date given for the current role", func(t *testing.T) {
		entry := base
		entry.Current = true
		entry.EndDate = "2024-13"
		r := profilecheck.ValidateExperience([]domain.Experience{entry})
		assert.Contains(t, r.Errors, "experience_0_endDate")
	})
}

func TestSkillsAsymmetry(t *testing.T) {
	t.Run("Should accept a title with no skills", func(t *testing.T) {
		r := profilecheck.ValidateProfessional(domain.Professional{Title: "Designer", Skills: []string{}})
		assert.True(t, r.HasData)
		assert.True(t, r.IsValid)
		assert.NotContains(t, r.Errors, "skills")
	})

	t.Run("Should reject a non-empty list under the minimum", func(t *testing.T) {
		r := profilecheck.ValidateProfessional(domain.Professional{Title: "Designer", Skills: []string{"a", "b"}})
		assert.False(t, r.IsValid)
		assert.Equal(t, []string{"Add between 3 and 20 skills"}, r.Errors["skills"])
	})

	t.Run("Should reject more than twenty skills", func(t *testing.T) {
		skills := make([]string, 21)
		for i := range skills {
			skills[i] = "skill"
		}
		r := profilecheck.ValidateProfessional(domain.Professional{Skills: skills})
		assert.Contains(t, r.Errors, "skills")
	})

	t.Run("Should not enforce uniqueness", func(t *testing.T) {
		r := profilecheck.ValidateProfessional(domain.Professional{Skills: []string{"Go", "Go", "Go"}})
		assert.True(t, r.IsValid)
	})
}

func TestCompletionMonotonicity(t *testing.T) {
	empty := domain.Profile{}
	assert.Equal(t, 0, profilecheck.CalculateCompletionPercentage(empty))

	additions := map[string]func(*domain.Profile){
		"personal":     func(p *domain.Profile) { p.PersonalInfo.Location = "Berlin" },
		"professional": func(p *domain.Profile) { p.Professional.Skills = []string{"Go"} },
		"experience":   func(p *domain.Profile) { p.Experience = []domain.Experience{{}} },
		"education":    func(p *domain.Profile) { p.Education = []domain.Education{{School: "MIT"}} },
		"projects":     func(p *domain.Profile) { p.Projects = []domain.Project{{Title: "x"}} },
	}

	for name, add := range additions {
		t.Run(name, func(t *testing.T) {
			p := domain.Profile{}
			add(&p)
			assert.Equal(t, 20, profilecheck.CalculateCompletionPercentage(p))
			assert.Equal(t, 0, profilecheck.CalculateCompletionPercentage(empty))
		})
	}

	t.Run("Should count presence rather than validity", func(t *testing.T) {
		p := domain.Profile{PersonalInfo: domain.PersonalInfo{Phone: "123"}}
		assert.Equal(t, 20, profilecheck.CalculateCompletionPercentage(p))
	})

	t.Run("Should reach 100 for a full profile", func(t *testing.T) {
		assert.Equal(t, 100, profilecheck.CalculateCompletionPercentage(validProfile()))
	})

	t.Run("Should drop back after removing the only entry", func(t *testing.T) {
		p := validProfile()
		p.Projects = p.Projects[:0]
		assert.Equal(t, 80, profilecheck.CalculateCompletionPercentage(p))
	})
}

func TestIdempotence(t *testing.T) {
	p := validProfile()
	p.PersonalInfo.Phone = "12"
	p.Education = append(p.Education, domain.Education{Degree: "MSc"})

	first := profilecheck.ValidateCompleteProfile(p)
	second := profilecheck.ValidateCompleteProfile(p)
	assert.Equal(t, first.Errors, second.Errors)
	assert.Equal(t, first.IsValid, second.IsValid)
}

func TestKeyNamespacing(t *testing.T) {
	p := domain.Profile{
		Experience: []domain.Experience{{Company: "Initech"}},
		Education:  []domain.Education{{School: "MIT"}},
		Projects:   []domain.Project{{URL: "https://example.com"}},
	}
	r := profilecheck.ValidateCompleteProfile(p)

	assert.Contains(t, r.Errors, "experience_0_title")
	assert.Contains(t, r.Errors, "projects_0_title")
	assert.Contains(t, r.Errors, "education_0_degree")
	assert.NotEqual(t, r.Errors["experience_0_title"], r.Errors["projects_0_title"])

	total := 0
	for _, s := range domain.AllSections() {
		res, _ := r.SectionValidation.Get(s)
		total += len(res.Errors)
	}
	assert.Equal(t, total, len(r.Errors))
}

func TestScenarios(t *testing.T) {
	t.Run("A: phone only", func(t *testing.T) {
		p := domain.Profile{PersonalInfo: domain.PersonalInfo{Phone: "9988776655"}}
		assert.Equal(t, 20, profilecheck.CalculateCompletionPercentage(p))
		r := profilecheck.ValidatePersonalInfo(p.PersonalInfo)
		assert.True(t, r.IsValid)
		assert.True(t, r.HasData)
	})

	t.Run("B: short phone", func(t *testing.T) {
		r := profilecheck.ValidatePersonalInfo(domain.PersonalInfo{Phone: "123"})
		assert.Equal(t, []string{"Enter a valid 10-digit phone number"}, r.Errors["phone"])
		assert.False(t, r.IsValid)
	})

	t.Run("C: current role without company", func(t *testing.T) {
		r := profilecheck.ValidateExperience([]domain.Experience{{
			Title:     "Engineer",
			Company:   "",
			StartDate: "2020-01",
			Current:   true,
		}})
		assert.Contains(t, r.Errors, "experience_0_company")
		assert.NotContains(t, r.Errors, "experience_0_endDate")
	})

	t.Run("D: skills only", func(t *testing.T) {
		r := profilecheck.ValidateProfessional(domain.Professional{Skills: []string{"a", "b", "c"}})
		assert.True(t, r.HasData)
		assert.True(t, r.IsValid)
		assert.Empty(t, r.Errors)
	})

	t.Run("E: empty profile", func(t *testing.T) {
		p := domain.Profile{}
		assert.Equal(t, 0, profilecheck.CalculateCompletionPercentage(p))
		r := profilecheck.ValidateCompleteProfile(p)
		assert.True(t, r.IsValid)
		assert.Equal(t, domain.SectionValidity{
			Personal: true, Professional: true, Experience: true, Education: true, Projects: true,
		}, profilecheck.CheckSectionValidity(r.SectionValidation))
	})
}

func TestPersonalFieldsAreIndependent(t *testing.T) {
	r := profilecheck.ValidatePersonalInfo(domain.PersonalInfo{
		Location: "X",
		SocialLinks: domain.SocialLinks{
			LinkedIn: "https://linkedin.com/company/acme",
			GitHub:   "https://github.com/octocat",
		},
	})
	assert.Contains(t, r.Errors, "location")
	assert.Contains(t, r.Errors, "linkedin")
	assert.NotContains(t, r.Errors, "github")
	assert.NotContains(t, r.Errors, "phone")
}

func TestProjectRules(t *testing.T) {
	t.Run("Should accept a complete project", func(t *testing.T) {
		r := profilecheck.ValidateProjects(validProfile().Projects)
		assert.True(t, r.IsValid)
	})

	t.Run("Should flag short description and bad repository URL", func(t *testing.T) {
		r := profilecheck.ValidateProjects([]domain.Project{
			validProfile().Projects[0],
			{Title: "CLI", Description: "Too short", GitHubURL: "https://gitlab.com/a/b"},
		})
		assert.NotContains(t, r.Errors, "projects_0_description")
		assert.Contains(t, r.Errors, "projects_1_description")
		assert.Contains(t, r.Errors, "projects_1_githubUrl")
	})

	t.Run("Should cap project skills at ten", func(t *testing.T) {
		p := validProfile().Projects[0]
		p.Skills = strings.Split("a,b,c,d,e,f,g,h,i,j,k", ",")
		r := profilecheck.ValidateProjects([]domain.Project{p})
		assert.Equal(t, []string{"A project can list at most 10 skills"}, r.Errors["projects_0_skills"])
	})
}

func TestDateRange(t *testing.T) {
	t.Run("Should flag an education that ends before it starts", func(t *testing.T) {
		r := profilecheck.ValidateEducation([]domain.Education{{
			Degree: "BSc", School: "MIT", StartDate: "2018-09", EndDate: "2017-06",
		}})
		assert.Equal(t, []string{profilecheck.DateRangeMessage}, r.Errors["education_0_dateRange"])
	})

	t.Run("Should accept equal months", func(t *testing.T) {
		r := profilecheck.ValidateExperience([]domain.Experience{{
			Title: "Intern", Company: "Globex", StartDate: "2019-06", EndDate: "2019-06",
		}})
		assert.True(t, r.IsValid)
	})

	t.Run("Should ignore the end date of a current role", func(t *testing.T) {
		r := profilecheck.ValidateExperience([]domain.Experience{{
			Title: "Lead", Company: "Globex", StartDate: "2022-01", EndDate: "2021-01", Current: true,
		}})
		assert.NotContains(t, r.Errors, "experience_0_dateRange")
	})

	t.Run("Should leave malformed dates to the field rules", func(t *testing.T) {
		r := profilecheck.ValidateExperience([]domain.Experience{{
			Title: "Lead", Company: "Globex", StartDate: "2022", EndDate: "2021-01",
		}})
		assert.Contains(t, r.Errors, "experience_0_startDate")
		assert.NotContains(t, r.Errors, "experience_0_dateRange")
	})
}

func TestCheckSectionValidity(t *testing.T) {
	sv := profilecheck.SectionValidation{
		Personal:     profilecheck.SectionResult{IsValid: false, HasData: false},
		Professional: profilecheck.SectionResult{IsValid: false, HasData: true},
		Experience:   profilecheck.SectionResult{IsValid: true, HasData: true},
		Education:    profilecheck.SectionResult{IsValid: true, HasData: false},
		Projects:     profilecheck.SectionResult{IsValid: false, HasData: true},
	}
	got := profilecheck.CheckSectionValidity(sv)
	assert.True(t, got.Personal)
	assert.False(t, got.Professional)
	assert.True(t, got.Experience)
	assert.True(t, got.Education)
	assert.False(t, got.Projects)
	assert.False(t, got.All())
}

func TestValidateSection(t *testing.T) {
	p := validProfile()
	p.Professional.Summary = "short"

	r, err := profilecheck.ValidateSection(p, domain.SectionProfessional)
	require.NoError(t, err)
	assert.Contains(t, r.Errors, "summary")

	_, err = profilecheck.ValidateSection(p, domain.Section("hobbies"))
	assert.ErrorIs(t, err, profilecheck.ErrUnknownSection)
}

func TestReadyForTemplates(t *testing.T) {
	assert.False(t, profilecheck.ReadyForTemplates(domain.Profile{}))
	assert.True(t, profilecheck.ReadyForTemplates(validProfile()))

	p := validProfile()
	p.Experience[0].Company = ""
	assert.False(t, profilecheck.ReadyForTemplates(p))
}

func TestIsReady(t *testing.T) {
	all := domain.SectionValidity{Personal: true, Professional: true, Experience: true, Education: true, Projects: true}

	assert.True(t, profilecheck.IsReady(all, 20))
	assert.False(t, profilecheck.IsReady(all, 0))

	one := all
	one.Projects = false
	assert.False(t, profilecheck.IsReady(one, 100))
}

func TestVisibleErrors(t *testing.T) {
	errs := domain.ValidationErrors{
		"phone":              {"first", "second"},
		"experience_0_title": {"title"},
	}

	t.Run("Should show only touched fields", func(t *testing.T) {
		got := profilecheck.VisibleErrors(errs, map[string]bool{"phone": true}, false)
		assert.Equal(t, map[string]string{"phone": "first"}, got)
	})

	t.Run("Should show everything after a save attempt", func(t *testing.T) {
		got := profilecheck.VisibleErrors(errs, nil, true)
		assert.Len(t, got, 2)
		assert.Equal(t, "title", got["experience_0_title"])
	})
}
