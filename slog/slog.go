// Package slog provides log/slog decorators for sitepack services.
package slog
