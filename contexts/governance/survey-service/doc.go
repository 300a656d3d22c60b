// Package surveyservice implements the survey engine inside the governance
// context: a survey is a flat collection of poll questions answered once,
// orchestrated on top of the poll engine. Question creation is awaited before
// a survey is returned, and answer fan-out deliberately carries no
// transaction boundary across questions.
package surveyservice
