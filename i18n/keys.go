package i18n

// message keys shared by the import flow and the viewer
const (
	KeyOnlyJSONSupported = "onlyJSONSupported"
	KeyLoadingFile       = "loadingFile"
	KeyErrorParsingFile  = "errorParsingFile"
	KeyInvalidHAR        = "invalidHAR"
	KeyFileOpened        = "fileOpened"
	KeyNoHiddenTags      = "noHiddenTags"
	KeyHiddenTags        = "hiddenTags"
	KeyDrop              = "drop"
	KeyNoItems           = "noItems"
	KeySearch            = "search"
	KeyFilter            = "filter"
	KeyParams            = "params"
	KeyContent           = "content"
	KeyMeta              = "meta"
	KeyDuration          = "duration"
	KeyItemsShown        = "itemsShown"
)
