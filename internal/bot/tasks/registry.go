package tasks

import "context"

// ScheduledTaskFunc is the signature shared by all scheduled tasks. The
// context is cancelled when the scheduler shuts down.
type ScheduledTaskFunc func(ctx context.Context) error

// Task names, used as keys in the scheduler's schedule map.
const (
	PresenceTask = "presence"
)

// RegisterAllTasks returns every scheduled task keyed by name.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := make(map[string]ScheduledTaskFunc)

	tasks[PresenceTask] = newPresenceTask(deps)

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}

// Schedules maps each task to its cron expression from cfg.
func Schedules(deps TaskDeps) map[string]string {
	return map[string]string{
		PresenceTask: deps.Config.Scheduler.PresenceSchedule,
	}
}
