// Package form drives the four-action analysis window: select export data,
// select import data, run analysis, exit.
//
// Session holds the selections and talks to the user only through the
// FilePicker and Notifier interfaces, so it runs the same behind a terminal
// (Console) or a test double. Run analysis with either file unselected shows
// "Please load both Export and Import data files." and does nothing else.
package form
