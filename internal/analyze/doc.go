// Package analyze builds the definition model of a pallet package.
//
// It loads the package syntax with golang.org/x/tools/go/packages and reads
// the //pallet: directives attached to its declarations:
//
//	//pallet:pallet                on the pallet struct (exactly one)
//	//pallet:config                on the config interface (exactly one), which
//	                               embeds the Config of the system runtime
//	//pallet:where <Param> <Bound> on the config interface, any number
//	//pallet:error                 on the error declaration (optional)
//	//pallet:version               on a string constant holding the version
//	//pallet:derive <Path>.<Name>  on any struct of the package
//
// Every violation is reported as a diagnostic; a model is only returned when
// there are none, so the expanders can rely on its structure.
package analyze
