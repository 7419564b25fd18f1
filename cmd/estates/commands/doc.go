// Package commands defines the estates CLI, which works directly on the SQLite database.
//
// Commands
//
//   - analyse   Compare buildings under their resolved financing
//   - stress    Recompute cash flow for an arbitrary rate and leverage
//   - project   Project cash flow over several years with inflation
//   - export    Write the comparison of buildings to an xlsx file
//
// Numeric flags are read leniently: anything that is not a number counts as 0.
package commands
