// Package view defines what the synchronization core renders and the small
// sink interfaces it renders into.
//
// Components depend only on the sink they need (StatusSink, Notifier,
// DialogPresenter and so on); a front end implements View, which is all of
// them. Models here are already formatted for display, so front ends do no
// domain logic.
package view
