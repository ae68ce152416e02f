// Package store loads game definition JSON into an in-memory, indexed Store.
//
// # Loading
//
// The Loader walks a data directory, reads every *.json file in path order,
// and scans files whose top-level value is an array. Each object element is
// classified by its "type" tag through a category.Registry; unclassified
// elements are dropped silently. Names are normalized to lower-case text at
// this point ("Kevlar Vest" and {"str": "Kevlar Vest"} both become
// "kevlar vest") so later searches can compare them directly.
//
//	loader := store.NewLoader(registry)
//	st, err := loader.Load(ctx, "/games/cdda/data/json")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(st.Report().RecordsLoaded, "records,", st.Report().Warnings(), "warnings")
//
// Unparsable files never abort a load; they are listed in the Report.
//
// # Records
//
// A Record keeps its top-level fields in source order, which is also the
// order they are displayed in. Stores are read-only once loaded: anything
// that rewrites a record for display works on Record.Clone.
package store
