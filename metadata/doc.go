// Package metadata parses ink! contract metadata and loads it from disk.
//
// A metadata document describes one contract: its type registry, the
// constructors and messages it exposes with their selectors and argument types,
// and build information. A .contract bundle is the same document with the
// compiled Wasm blob embedded under source.wasm.
//
//	project, err := metadata.Parse(data)
//	msg, err := project.Message("flip")
//	// msg.Selector, msg.Args[i].Type, msg.ReturnType
//
// # Loading
//
// Loader reads .json and .contract files and keeps parsed projects in an LRU
// cache keyed by path and modification time. Concurrent loads of the same file
// are coalesced. For metadata keyed by contract address, Loader looks in a cache
// directory for <address>.json:
//
//	loader, _ := metadata.NewLoader(metadata.WithCacheDir(dir))
//	project, err := loader.Load(ctx, address, "")  // cache dir lookup
//	project, err := loader.Load(ctx, address, "flipper.contract")
//
// Metadata is never fetched over the network.
package metadata
