package formatter

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-timelog/internal/core/model"
)

type JSONFormatter struct {
	out io.Writer
}

type jsonSummary struct {
	model.PeriodSummary
	Level string `json:"level"`
}

type jsonGroup struct {
	Title     string        `json:"title"`
	Summaries []jsonSummary `json:"summaries"`
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{out: w}
}

func (f *JSONFormatter) Format(groups []SummaryGroup) error {
	payload := make([]jsonGroup, 0, len(groups))
	for _, group := range groups {
		g := jsonGroup{Title: group.Title, Summaries: make([]jsonSummary, 0, len(group.Rows))}
		for _, row := range group.Rows {
			g.Summaries = append(g.Summaries, jsonSummary{PeriodSummary: row.Summary, Level: row.Level.String()})
		}
		payload = append(payload, g)
	}

	data, err := sonic.ConfigStd.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	_, err = f.out.Write(append(data, '\n'))
	return err
}
