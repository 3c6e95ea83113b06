// Package types defines the navigation state graph, parameter sets, the
// RedirectMemory interface, navigation events, and the standard errors shared
// by the searchnav packages.
//
// A State is identified by a dotted StateID ("search", "search.results");
// the dotted prefix names the parent. A parent that declares a Redirect
// function is a redirect group: whenever a navigation settles into one of its
// descendants, the descendant and its sanitized Params are recorded in a
// RedirectMemory, and re-entering the parent replays that navigation.
package types
