package ops

import (
	"github.com/hpungsan/c1assist/internal/config"
	"github.com/hpungsan/c1assist/internal/db"
	"github.com/hpungsan/c1assist/internal/log"
	"github.com/hpungsan/c1assist/internal/scaffold"
)

// PlanOutput describes what Create would do, without doing it.
type PlanOutput struct {
	Tree          *scaffold.Tree `json:"tree"`
	Template      string         `json:"template,omitempty"`
	TemplateFound bool           `json:"template_found"`
	SearchPath    []string       `json:"search_path"`
	StartKey      int64          `json:"start_key"`
	Rows          []db.Location  `json:"rows"`
}

// Plan validates a create request and reports the directories, session file,
// and rows Create would produce. Nothing is written. The start key is read
// from the template when it can be opened, otherwise the key floor is assumed.
func Plan(cfg *config.Config, input CreateInput) (*PlanOutput, error) {
	if err := requireConfig(cfg); err != nil {
		return nil, err
	}

	in := buildInput(cfg, input)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	out := &PlanOutput{
		Tree:       scaffold.NewTree(in.Location, in.Name, in.FolderCount, in.Layout),
		SearchPath: in.TemplateDirs,
		StartKey:   cfg.Floor() + 1,
	}

	if tmpl, err := scaffold.LocateTemplate(in.TemplateName, in.TemplateDirs); err == nil {
		out.Template = tmpl
		out.TemplateFound = true
		if maxKey, err := templateMaxKey(tmpl, cfg.Floor()); err == nil {
			out.StartKey = maxKey + 1
		} else {
			log.Warn().Err(err).Str("template", tmpl).Msg("cannot read template, assuming key floor")
		}
	}

	out.Rows, _ = db.PlanRows(out.StartKey, patchOptions(cfg, in.FolderCount, false), nil)
	return out, nil
}

func templateMaxKey(path string, floor int64) (int64, error) {
	database, err := db.Open(path)
	if err != nil {
		return 0, err
	}
	defer database.Close()
	return db.MaxKey(database, floor)
}
