package bubbletea

// FitLine exposes fitLine for external tests.
var FitLine = fitLine
