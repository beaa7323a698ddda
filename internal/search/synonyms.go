package search

import (
	"strings"

	"github.com/computeruseprotocol/go-sdk/internal/model"
)

// synonyms maps natural-language phrases to canonical role sets. Every
// canonical role also maps to the singleton of itself, added in init.
var synonyms = map[string][]string{
	"btn":            {model.RoleButton},
	"push button":    {model.RoleButton},
	"submit button":  {model.RoleButton},
	"input":          {model.RoleTextbox, model.RoleSearchBox, model.RoleCombobox},
	"field":          {model.RoleTextbox, model.RoleSearchBox, model.RoleCombobox},
	"text field":     {model.RoleTextbox, model.RoleSearchBox},
	"text box":       {model.RoleTextbox, model.RoleSearchBox},
	"text input":     {model.RoleTextbox, model.RoleSearchBox},
	"input field":    {model.RoleTextbox, model.RoleSearchBox, model.RoleCombobox},
	"edit box":       {model.RoleTextbox},
	"search bar":     {model.RoleSearch, model.RoleSearchBox, model.RoleTextbox, model.RoleCombobox},
	"search box":     {model.RoleSearch, model.RoleSearchBox, model.RoleTextbox, model.RoleCombobox},
	"search field":   {model.RoleSearch, model.RoleSearchBox, model.RoleTextbox, model.RoleCombobox},
	"address bar":    {model.RoleTextbox, model.RoleCombobox},
	"url bar":        {model.RoleTextbox, model.RoleCombobox},
	"drop down":      {model.RoleCombobox},
	"dropdown":       {model.RoleCombobox},
	"drop down list": {model.RoleCombobox},
	"select":         {model.RoleCombobox, model.RoleList},
	"picker":         {model.RoleCombobox},
	"check box":      {model.RoleCheckbox},
	"tick box":       {model.RoleCheckbox},
	"radio button":   {model.RoleRadio},
	"toggle":         {model.RoleSwitch, model.RoleCheckbox},
	"toggle switch":  {model.RoleSwitch},
	"hyperlink":      {model.RoleLink},
	"url":            {model.RoleLink},
	"picture":        {model.RoleImg},
	"image":          {model.RoleImg},
	"icon":           {model.RoleImg, model.RoleButton},
	"photo":          {model.RoleImg},
	"popup":          {model.RoleDialog, model.RoleAlertDialog},
	"modal":          {model.RoleDialog, model.RoleAlertDialog},
	"prompt":         {model.RoleDialog, model.RoleAlertDialog},
	"title":          {model.RoleHeading, model.RoleTitleBar},
	"header":         {model.RoleHeading, model.RoleBanner},
	"menu option":    {model.RoleMenuItem, model.RoleMenuItemCheckbox, model.RoleMenuItemRadio},
	"menu entry":     {model.RoleMenuItem},
	"context menu":   {model.RoleMenu},
	"nav":            {model.RoleNavigation},
	"sidebar":        {model.RoleComplementary, model.RoleNavigation},
	"scroll area":    {model.RoleGeneric},
	"slider control": {model.RoleSlider},
	"spinner":        {model.RoleSpinButton, model.RoleProgressBar},
	"progress":       {model.RoleProgressBar},
	"label":          {model.RoleText},
	"caption text":   {model.RoleCaption},
	"table row":      {model.RoleRow},
	"table cell":     {model.RoleCell},
	"grid cell":      {model.RoleCell},
	"list entry":     {model.RoleListItem},
	"tree node":      {model.RoleTreeItem},
	"tab bar":        {model.RoleTabList},
	"tab strip":      {model.RoleTabList},
	"tool bar":       {model.RoleToolbar},
	"status bar":     {model.RoleStatus},
	"app":            {model.RoleApplication},
	"page":           {model.RoleDocument},
	"web page":       {model.RoleDocument},
	"frame":          {model.RoleWindow, model.RoleDocument},
}

func init() {
	for _, role := range model.Roles {
		if _, ok := synonyms[role]; !ok {
			synonyms[role] = []string{role}
		}
	}
}

// maxSynonymSpan is the longest phrase length, in tokens, considered
// when scanning a query for a role span.
const maxSynonymSpan = 3

// lookupPhrase returns the role set for an exact phrase, or nil.
func lookupPhrase(tokens []string) []string {
	return synonyms[strings.Join(tokens, " ")]
}

// ResolveRoles maps a free-form role string to canonical roles. Literal
// table hit first; then per-token hits; then, for inputs of three or
// more characters, canonical roles containing the input as a substring.
func ResolveRoles(query string) []string {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil
	}
	if set := lookupPhrase(tokens); set != nil {
		return set
	}

	var out []string
	seen := make(map[string]bool)
	for _, t := range tokens {
		for _, role := range synonyms[t] {
			if !seen[role] {
				seen[role] = true
				out = append(out, role)
			}
		}
	}
	if len(out) > 0 {
		return out
	}

	joined := strings.Join(tokens, " ")
	if len(joined) >= 3 {
		for _, role := range model.Roles {
			if strings.Contains(role, joined) {
				out = append(out, role)
			}
		}
	}
	return out
}

// splitQuery scans tokens left-to-right for the longest contiguous
// one-to-three-token span present in the synonym table. The span names
// the target roles; the remaining tokens, minus noise words, form the
// name query.
func splitQuery(tokens []string) (roles []string, nameTokens []string) {
	bestStart, bestLen := -1, 0
	for start := 0; start < len(tokens); start++ {
		limit := maxSynonymSpan
		if rest := len(tokens) - start; rest < limit {
			limit = rest
		}
		for span := limit; span >= 1; span-- {
			if span <= bestLen {
				break
			}
			if set := lookupPhrase(tokens[start : start+span]); set != nil {
				bestStart, bestLen = start, span
				roles = set
				break
			}
		}
	}

	for i, t := range tokens {
		if bestStart >= 0 && i >= bestStart && i < bestStart+bestLen {
			continue
		}
		nameTokens = append(nameTokens, t)
	}
	return roles, dropNoise(nameTokens)
}
