package views

// Messages emitted by the views and handled by the App
type (
	SwitchToMapMsg    struct{}
	SwitchToHelpMsg   struct{}
	SwitchToSearchMsg struct{}

	SavePinMsg         struct{}
	AddFabricatorMsg   struct{}
	ClosePanelMsg      struct{}
	CopyCoordsMsg      struct{}
	EditDescriptionMsg struct{}
	OpenInBrowserMsg   struct{}

	// SearchQueryMsg is sent on every change of the search box
	SearchQueryMsg struct{ Query string }
	// SearchSelectMsg picks result Index
	SearchSelectMsg struct{ Index int }

	ConfirmPlacementMsg struct{}
	CancelPlacementMsg  struct{}
)
