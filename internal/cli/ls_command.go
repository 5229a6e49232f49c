package cli

import (
	"context"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"task-hunter/internal/domain"
	"task-hunter/internal/services"
)

// lsOptions collects the ls flags.
type lsOptions struct {
	all        bool
	open       bool
	started    bool
	current    bool
	inProgress bool
	todo       bool
	finished   bool
	startsWith string
	contains   string
}

func (a *App) newLsCommand() *cobra.Command {
	var opts lsOptions

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List tasks",
		Long:  "List tasks. Defaults to listing all open tasks (Current, In Progress, TODO).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLs(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.all, "all", "a", false, "List all tasks (short for -citf)")
	flags.BoolVarP(&opts.open, "open", "o", false, "List all open tasks (short for -cit)")
	flags.BoolVar(&opts.started, "started", false, "List all started tasks (short for -ci)")
	flags.BoolVarP(&opts.current, "current", "c", false, "List all Current tasks")
	flags.BoolVarP(&opts.inProgress, "in-progress", "i", false, "List all In Progress tasks")
	flags.BoolVarP(&opts.todo, "todo", "t", false, "List all TODO tasks")
	flags.BoolVarP(&opts.finished, "finished", "f", false, "List all Finished tasks")
	flags.StringVarP(&opts.startsWith, "starts-with", "S", "", "Only tasks whose name starts with STRING")
	flags.StringVarP(&opts.contains, "contains", "C", "", "Only tasks whose name contains STRING")

	return cmd
}

// resolveStatusFilter combines the status flags into the set of statuses to
// list, in rank order. No flags means the open statuses.
func resolveStatusFilter(opts lsOptions) []domain.Status {
	include := map[domain.Status]bool{}
	if opts.all {
		for _, status := range domain.AllStatuses {
			include[status] = true
		}
	}
	if opts.open {
		for _, status := range domain.OpenStatuses {
			include[status] = true
		}
	}
	if opts.started {
		include[domain.StatusCurrent] = true
		include[domain.StatusInProgress] = true
	}
	if opts.current {
		include[domain.StatusCurrent] = true
	}
	if opts.inProgress {
		include[domain.StatusInProgress] = true
	}
	if opts.todo {
		include[domain.StatusTodo] = true
	}
	if opts.finished {
		include[domain.StatusFinished] = true
	}
	if len(include) == 0 {
		return domain.OpenStatuses
	}

	var statuses []domain.Status
	for _, status := range domain.AllStatuses {
		if include[status] {
			statuses = append(statuses, status)
		}
	}
	return statuses
}

func (a *App) runLs(ctx context.Context, opts lsOptions) error {
	hunter, closeStore, err := a.openHunter()
	if err != nil {
		return err
	}
	defer closeStore()

	return a.listTasks(ctx, hunter, opts)
}

// listTasks renders the filtered task list. It is shared with the commands
// that show a listing after mutating state (workon, restart, edit).
func (a *App) listTasks(ctx context.Context, hunter *services.Hunter, opts lsOptions) error {
	if a.config.Silent {
		return nil
	}

	tasks, err := hunter.GetTasks(ctx, resolveStatusFilter(opts), opts.startsWith, opts.contains)
	if err != nil {
		return err
	}

	taskIDs := make([]int64, len(tasks))
	for i, task := range tasks {
		taskIDs[i] = task.ID
	}
	history, err := hunter.GetHistory(ctx, taskIDs)
	if err != nil {
		return err
	}
	progressByTask := map[int64]int64{}
	historyByTask := map[int64][]domain.HistoryRecord{}
	for _, record := range history {
		historyByTask[record.TaskID] = append(historyByTask[record.TaskID], record)
	}
	for taskID, taskHistory := range historyByTask {
		progressByTask[taskID] = domain.CalcProgress(taskHistory)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		BorderColumn(false).
		Headers("ID", "NAME", "ESTIMATE", "PROGRESS", "STATUS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			return statusStyle(tasks[row].Status).Padding(0, 1)
		})
	for _, task := range tasks {
		tbl.Row(
			strconv.FormatInt(task.ID, 10),
			task.Name,
			task.EstimateDisplay(),
			domain.FormatProgress(progressByTask[task.ID]),
			task.Status.String(),
		)
	}

	a.println(tbl.Render())
	return nil
}
