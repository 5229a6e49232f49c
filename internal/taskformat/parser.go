package taskformat

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"task-hunter/internal/domain"
	"task-hunter/internal/errors"
)

// ParsedHistoryRecord is one start or stop event recovered from the text
// format. It has no database identity yet.
type ParsedHistoryRecord struct {
	IsStart bool
	Time    int64
}

// ParsedTask is the validated intermediate representation of a parsed text
// block, carrying everything needed to recreate the task and its history.
type ParsedTask struct {
	Name        string
	Estimate    *int64
	Description *string
	Status      domain.Status
	History     []ParsedHistoryRecord
}

// Parse tokenizes a task text block against the strict grammar and runs the
// semantic validation rules. The grammar is deliberately rigid (fixed field
// order, fixed timestamp format, fixed status vocabulary) so human editing
// mistakes are caught before they reach the store. Every failure is a task
// validation error with a human-readable cause.
func Parse(text string) (*ParsedTask, error) {
	p := &parser{lines: strings.Split(text, "\n")}

	task, err := p.parseTask()
	if err != nil {
		return nil, err
	}
	if err := validate(task); err != nil {
		return nil, err
	}
	return task, nil
}

// parser is a recursive-descent parser over the block's lines.
type parser struct {
	lines []string
	pos   int
}

func (p *parser) parseTask() (*ParsedTask, error) {
	task := &ParsedTask{}

	name, err := p.parseFieldLine("NAME")
	if err != nil {
		return nil, err
	}
	task.Name = name

	estimateText, err := p.parseFieldLine("ESTIMATE")
	if err != nil {
		return nil, err
	}
	task.Estimate, err = p.parseEstimate(estimateText)
	if err != nil {
		return nil, err
	}

	statusText, err := p.parseFieldLine("STATUS")
	if err != nil {
		return nil, err
	}
	status, parseErr := domain.ParseStatus(statusText)
	if parseErr != nil {
		return nil, p.errorf("STATUS must be one of Current, In Progress, TODO or Finished, got %q", statusText)
	}
	task.Status = status

	description, err := p.parseFieldLine("DESCRIPTION")
	if err != nil {
		return nil, err
	}
	if description != noneValue {
		task.Description = &description
	}

	if err := p.expectBlankLine(); err != nil {
		return nil, err
	}
	if err := p.expectLine("HISTORY"); err != nil {
		return nil, err
	}

	task.History, err = p.parseHistoryRecords()
	if err != nil {
		return nil, err
	}

	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return task, nil
}

// parseFieldLine consumes one "FIELD: value" header line.
func (p *parser) parseFieldLine(field string) (string, error) {
	line, ok := p.next()
	if !ok {
		return "", p.errorf("expected %q line, got end of input", field+":")
	}
	prefix := field + ":"
	if !strings.HasPrefix(line, prefix) {
		return "", p.errorf("expected %q line, got %q", prefix, line)
	}
	value := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	if value == "" {
		return "", p.errorf("%s must not be empty", field)
	}
	return value, nil
}

// parseEstimate accepts a positive integer without a leading zero, or None.
func (p *parser) parseEstimate(text string) (*int64, error) {
	if text == noneValue {
		return nil, nil
	}
	if strings.HasPrefix(text, "0") {
		return nil, p.errorf("ESTIMATE must be a positive integer or None, got %q", text)
	}
	estimate, err := strconv.ParseInt(text, 10, 64)
	if err != nil || estimate < 1 {
		return nil, p.errorf("ESTIMATE must be a positive integer or None, got %q", text)
	}
	return &estimate, nil
}

func (p *parser) parseHistoryRecords() ([]ParsedHistoryRecord, error) {
	var records []ParsedHistoryRecord
	for {
		line, ok := p.next()
		if !ok || strings.TrimSpace(line) == "" {
			p.backup()
			return records, nil
		}

		recordType, timestamp, found := strings.Cut(line, "\t")
		if !found {
			return nil, p.errorf("history record must be Start or Stop, a tab, then a timestamp, got %q", line)
		}

		var isStart bool
		switch recordType {
		case "Start":
			isStart = true
		case "Stop":
			isStart = false
		default:
			return nil, p.errorf("history record must begin with Start or Stop, got %q", recordType)
		}

		eventTime, err := p.parseTimestamp(strings.TrimRight(timestamp, " \t"))
		if err != nil {
			return nil, err
		}

		records = append(records, ParsedHistoryRecord{IsStart: isStart, Time: eventTime})
	}
}

// parseTimestamp accepts exactly the canonical local-time format.
func (p *parser) parseTimestamp(text string) (int64, error) {
	parsed, err := time.ParseInLocation(domain.TimeDisplayFormat, text, time.Local)
	if err != nil || parsed.Format(domain.TimeDisplayFormat) != text {
		return 0, p.errorf("timestamp must be in YYYY-MM-DD HH:MM:SS format, got %q", text)
	}
	return parsed.Unix(), nil
}

func (p *parser) expectBlankLine() error {
	line, ok := p.next()
	if !ok {
		return p.errorf("expected a blank line before HISTORY, got end of input")
	}
	if strings.TrimSpace(line) != "" {
		return p.errorf("expected a blank line before HISTORY, got %q", line)
	}
	return nil
}

func (p *parser) expectLine(expected string) error {
	line, ok := p.next()
	if !ok {
		return p.errorf("expected %q, got end of input", expected)
	}
	if strings.TrimSpace(line) != expected {
		return p.errorf("expected %q, got %q", expected, line)
	}
	return nil
}

// expectEnd allows only blank lines after the history records.
func (p *parser) expectEnd() error {
	for {
		line, ok := p.next()
		if !ok {
			return nil
		}
		if strings.TrimSpace(line) != "" {
			return p.errorf("unexpected content after history: %q", line)
		}
	}
}

func (p *parser) next() (string, bool) {
	if p.pos >= len(p.lines) {
		return "", false
	}
	line := p.lines[p.pos]
	p.pos++
	return line, true
}

func (p *parser) backup() {
	if p.pos > 0 {
		p.pos--
	}
}

func (p *parser) errorf(format string, args ...interface{}) *errors.AppError {
	cause := fmt.Sprintf(format, args...)
	return errors.NewTaskValidationError(fmt.Sprintf("line %d: %s", p.pos, cause))
}
