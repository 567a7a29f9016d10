// Package prompt runs the application wizard as plain line prompts for
// terminals where the full-screen interface is unwanted (--plain).
//
// Questions are asked through a Driver; SurveyDriver is the terminal
// implementation. Field answers are checked with the same validators as
// the full-screen wizard and each step is validated again as a whole before
// it is committed to the form store.
//
// Paginated choices list every item loaded so far followed by a load-more
// entry while the remote collection has pages left. Choosing it fetches the
// next page and asks again.
package prompt
