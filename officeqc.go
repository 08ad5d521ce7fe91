// Package officeqc turns a folder of office document files into two derived
// corpora, a plain-text rendering and a hyperlink inventory, and supports a
// quality-check pass that opens every newly-seen hyperlink across the whole
// inventory exactly once.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., etree/, fs/, csv/).
package officeqc
