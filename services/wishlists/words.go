package wishlists

// shareWords is the dictionary used to build pronounceable share-link tokens.
var shareWords = []string{
	"amber", "anchor", "apple", "apricot", "arrow", "aspen", "autumn", "bamboo",
	"basil", "beacon", "berry", "birch", "blossom", "breeze", "brook", "candle",
	"canyon", "cedar", "cherry", "cinder", "citrus", "clover", "cobalt", "comet",
	"coral", "cotton", "cricket", "crystal", "dahlia", "dawn", "delta", "dewdrop",
	"drift", "dune", "ember", "fable", "falcon", "feather", "fern", "fig",
	"firefly", "fjord", "flint", "forest", "fox", "frost", "garnet", "ginger",
	"glade", "glacier", "grove", "harbor", "hazel", "heather", "hollow", "honey",
	"ivory", "jade", "jasper", "juniper", "kite", "lagoon", "lantern", "larch",
	"lark", "lavender", "lemon", "lilac", "linden", "lotus", "lunar", "maple",
	"marble", "meadow", "mellow", "mint", "mist", "mossy", "nectar", "nimbus",
	"north", "oak", "ocean", "olive", "onyx", "opal", "orchid", "otter",
	"pebble", "peony", "pepper", "petal", "pine", "plum", "pond", "poppy",
	"prairie", "quartz", "quill", "raven", "reed", "ridge", "river", "robin",
	"rose", "rowan", "saffron", "sage", "sand", "shadow", "shore", "sierra",
	"silver", "sky", "sleet", "sparrow", "spruce", "star", "stone", "storm",
	"summit", "sunny", "thistle", "thorn", "tide", "timber", "topaz", "trail",
	"tulip", "tundra", "velvet", "violet", "walnut", "willow", "winter", "wren",
}
