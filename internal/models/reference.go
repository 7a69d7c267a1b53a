// Package models defines the data structures for the scheme recommendation engine.
package models

// Reference lists offered to presentation layers for profile inputs.
// They are suggestions, not validation: the pipeline accepts any
// free-text value for these fields.

// AllStates lists Indian states and union territories.
var AllStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh", "Goa",
	"Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka", "Kerala",
	"Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya", "Mizoram", "Nagaland",
	"Odisha", "Punjab", "Rajasthan", "Sikkim", "Tamil Nadu", "Telangana", "Tripura",
	"Uttar Pradesh", "Uttarakhand", "West Bengal",
	// Union Territories
	"Andaman and Nicobar Islands", "Chandigarh", "Dadra and Nagar Haveli and Daman and Diu",
	"Delhi", "Jammu and Kashmir", "Ladakh", "Lakshadweep", "Puducherry",
}

// Occupations lists common occupation choices.
var Occupations = []string{
	"Any", "Farmer", "Student", "Government Employee", "Private Employee", "Self-Employed",
	"Professional (Doctor)", "Professional (Engineer)", "Teacher", "Trader/Shopkeeper",
	"Artisan", "Goldsmith", "Driver", "Construction Worker", "Daily Wage Labourer",
	"Housewife / Homemaker", "Entrepreneur", "Unemployed", "Retired",
}

// EducationLevels lists education choices.
var EducationLevels = []string{
	"Any", "Below 8th", "8th", "10th", "12th", "Diploma", "Graduation",
	"Post Graduation", "PhD", "Other",
}

// Categories lists social category choices.
var Categories = []string{"Any", "General", "OBC", "SC", "ST", "EWS"}
