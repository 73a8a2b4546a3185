// Package funnel drives the one-time engagement prompts.
//
// Check evaluates the stored funnel state against the clock and returns at
// most one Dialog for the caller to show. States only move forward
// (START, WALLPAPER, REVIEW, RATE, SHARE); every advance is persisted and
// the next state is evaluated in the same call, so several transitions can
// cascade. On day-of-year 1 and 32 a New Year greeting preempts the funnel
// once per day.
package funnel
