package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/schedgen/core/model"
)

type MeetingDef struct {
	Course   string `yaml:"course"`
	Section  string `yaml:"section"`
	Day      string `yaml:"day"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
	Location string `yaml:"location"`
	Enrolled int    `yaml:"enrolled"`
	Capacity int    `yaml:"capacity"`
}

func (m MeetingDef) ToModel() (model.Meeting, error) {
	day, err := model.ParseWeekday(m.Day)
	if err != nil {
		return model.Meeting{}, err
	}
	start, err := model.ParseTimeOfDay(m.Start)
	if err != nil {
		return model.Meeting{}, err
	}
	end, err := model.ParseTimeOfDay(m.End)
	if err != nil {
		return model.Meeting{}, err
	}
	return model.NewMeeting(model.Meeting{
		Course:   m.Course,
		Section:  model.SectionID(m.Section),
		Day:      day,
		Start:    start,
		End:      end,
		Location: m.Location,
		Enrolled: m.Enrolled,
		Capacity: m.Capacity,
	})
}

type RequestDef struct {
	Courses []string `yaml:"courses"`
	Window  string   `yaml:"window"`
	Campus  string   `yaml:"campus"`
}

func (r RequestDef) ToModel() (model.Request, error) {
	w, err := model.ParseWindow(r.Window)
	if err != nil {
		return model.Request{}, err
	}
	c, err := model.ParseCampus(r.Campus)
	if err != nil {
		return model.Request{}, err
	}
	return model.Request{Courses: r.Courses, Window: w, Campus: c}, nil
}

type Expected struct {
	// Outcome is the generation outcome label, "ok" when empty.
	Outcome      string   `yaml:"outcome,omitempty"`
	Combinations []string `yaml:"combinations,omitempty"`
}

type Scenario struct {
	Name           string       `yaml:"name"`
	Description    string       `yaml:"description,omitempty"`
	IncludeFull    bool         `yaml:"include_full,omitempty"`
	MaxSearchSpace uint64       `yaml:"max_search_space,omitempty"`
	Meetings       []MeetingDef `yaml:"meetings"`
	Request        RequestDef   `yaml:"request"`
	Expected       Expected     `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("%s: scenario name is required", path)
	}
	return &sc, nil
}
