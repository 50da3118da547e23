// Package logging builds the slog loggers passed into every build stage.
//
// Two formats are supported: "console" renders compact "LEVEL message k=v"
// lines without timestamps, "json" renders one JSON object per record.
// LevelNotice sits between info and warn and marks stage milestones.
package logging
