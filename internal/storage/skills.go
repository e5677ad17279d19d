package storage

import (
	"os"
	"path/filepath"

	"github.com/arete-cli/arete/pkg/models"
)

// skillFrontmatter is the YAML header of a SKILL.md file.
type skillFrontmatter struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Triggers    []string `yaml:"triggers"`
	WorkType    string   `yaml:"work_type"`
	Category    string   `yaml:"category"`
	Primitives  []string `yaml:"primitives"`
	Tool        bool     `yaml:"tool"`
}

// LoadSkills reads every .agents/skills/<slug>/SKILL.md into a routing
// candidate. A missing skills directory yields an empty list; a skill
// whose frontmatter fails to parse is skipped.
func LoadSkills(paths WorkspacePaths) ([]models.SkillCandidate, error) {
	entries, err := os.ReadDir(paths.Skills)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var skills []models.SkillCandidate
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(paths.Skills, entry.Name())
		raw, err := os.ReadFile(filepath.Join(dir, "SKILL.md"))
		if err != nil {
			continue
		}
		var fm skillFrontmatter
		if err := parseFrontmatterInto(string(raw), &fm); err != nil {
			continue
		}
		name := fm.Name
		if name == "" {
			name = entry.Name()
		}
		var primitives []models.Primitive
		for _, p := range fm.Primitives {
			primitives = append(primitives, models.Primitive(p))
		}
		skills = append(skills, models.SkillCandidate{
			ID:          entry.Name(),
			Name:        name,
			Description: fm.Description,
			Path:        dir,
			Triggers:    fm.Triggers,
			Primitives:  primitives,
			WorkType:    models.WorkType(fm.WorkType),
			Category:    fm.Category,
			Tool:        fm.Tool,
		})
	}
	return skills, nil
}
