// Package dependency records which configuration sections must exist before
// another section can be enabled.
//
// The graph is tiny and static. It is built once by the merge package and
// answers two questions: which sections does a given section depend on, and in
// which order must missing prerequisites be provisioned.
package dependency
