// Package logging constructs slog loggers for the CLI.
//
// Two formats are supported: a human-oriented console format rendering
// "TIME LEVEL component: message k=v", and a JSON format with ts/level/msg
// keys. Components tag their loggers with a "component" attribute, which
// the console handler folds into the message prefix.
package logging
