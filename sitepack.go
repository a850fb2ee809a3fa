// Package sitepack extracts the frontend assets of a website. It fetches a
// page, enumerates the stylesheets, scripts, images and fonts it references,
// fingerprints frontend frameworks, estimates a synthetic performance score
// and persists the result so it can later be previewed, downloaded as an
// archive or summarised as a report.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, rod/).
package sitepack
