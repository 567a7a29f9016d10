// Package form defines the application data collected by the wizard, the
// validation rules for each step, and the Store that holds committed steps.
//
// Step data only reaches the Store after its step validates. The wizard and
// the plain prompt mode share the field validators exported here, so both
// report identical messages.
package form
