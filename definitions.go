package bungie

// Definition is implemented by every manifest record type. EntityType is the
// upstream schema name, which is also the world database table name and the
// {entityType} segment of the entity definition endpoint.
type Definition interface {
	EntityType() string
}

// Entity type names as the platform spells them.
const (
	EntityActivity         = "DestinyActivityDefinition"
	EntityActivityMode     = "DestinyActivityModeDefinition"
	EntityActivityType     = "DestinyActivityTypeDefinition"
	EntityPlace            = "DestinyPlaceDefinition"
	EntityDestination      = "DestinyDestinationDefinition"
	EntityClass            = "DestinyClassDefinition"
	EntityInventoryItem    = "DestinyInventoryItemDefinition"
	EntityVendor           = "DestinyVendorDefinition"
	EntityProgression      = "DestinyProgressionDefinition"
	EntityPresentationNode = "DestinyPresentationNodeDefinition"
	EntityRecord           = "DestinyRecordDefinition"
	EntityTalentGrid       = "DestinyTalentGridDefinition"
)

// DisplayProperties used for most definitions
type DisplayProperties struct {
	Description string `json:"description"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	HasIcon     bool   `json:"hasIcon"`
}

// DefinitionBase carries the fields every definition has. Hash identifies a
// record within its own entity type only.
type DefinitionBase struct {
	Hash        uint32 `json:"hash"`
	Index       int32  `json:"index"`
	Redacted    bool   `json:"redacted"`
	Blacklisted bool   `json:"blacklisted"`
}

type ActivityDefinition struct {
	DefinitionBase
	DisplayProperties         DisplayProperties         `json:"displayProperties"`
	OriginalDisplayProperties DisplayProperties         `json:"originalDisplayProperties"`
	ReleaseIcon               string                    `json:"releaseIcon"`
	ReleaseTime               int32                     `json:"releaseTime"`
	ActivityLightLevel        int32                     `json:"activityLightLevel"`
	DestinationHash           uint32                    `json:"destinationHash"`
	PlaceHash                 uint32                    `json:"placeHash"`
	ActivityTypeHash          uint32                    `json:"activityTypeHash"`
	Tier                      int32                     `json:"tier"`
	PGCRImage                 string                    `json:"pgcrImage"`
	IsPlaylist                bool                      `json:"isPlaylist"`
	IsPvP                     bool                      `json:"isPvP"`
	Matchmaking               *ActivityMatchmaking      `json:"matchmaking"`
	DirectActivityModeHash    *uint32                   `json:"directActivityModeHash"`
	DirectActivityModeType    *int32                    `json:"directActivityModeType"`
	ActivityModeHashes        []uint32                  `json:"activityModeHashes"`
	ActivityLocationMappings  []ActivityLocationMapping `json:"activityLocationMappings"`
}

func (ActivityDefinition) EntityType() string { return EntityActivity }

type ActivityMatchmaking struct {
	IsMatchmade          bool  `json:"isMatchmade"`
	MinParty             int32 `json:"minParty"`
	MaxParty             int32 `json:"maxParty"`
	MaxPlayers           int32 `json:"maxPlayers"`
	RequiresGuardianOath bool  `json:"requiresGuardianOath"`
}

type ActivityLocationMapping struct {
	LocationHash     uint32  `json:"locationHash"`
	ActivationSource string  `json:"activationSource"`
	ItemHash         *uint32 `json:"itemHash"`
	ObjectiveHash    *uint32 `json:"objectiveHash"`
	ActivityHash     *uint32 `json:"activityHash"`
}

type ActivityModeDefinition struct {
	DefinitionBase
	DisplayProperties    DisplayProperties `json:"displayProperties"`
	PGCRImage            string            `json:"pgcrImage"`
	ModeType             int32             `json:"modeType"`
	ActivityModeCategory int32             `json:"activityModeCategory"`
	IsTeamBased          bool              `json:"isTeamBased"`
	Tier                 int32             `json:"tier"`
	IsAggregateMode      bool              `json:"isAggregateMode"`
	ParentHashes         []uint32          `json:"parentHashes"`
	FriendlyName         string            `json:"friendlyName"`
	Display              bool              `json:"display"`
	Order                int32             `json:"order"`
}

func (ActivityModeDefinition) EntityType() string { return EntityActivityMode }

type ActivityTypeDefinition struct {
	DefinitionBase
	DisplayProperties DisplayProperties `json:"displayProperties"`
}

func (ActivityTypeDefinition) EntityType() string { return EntityActivityType }

type PlaceDefinition struct {
	DefinitionBase
	DisplayProperties DisplayProperties `json:"displayProperties"`
}

func (PlaceDefinition) EntityType() string { return EntityPlace }

type DestinationDefinition struct {
	DefinitionBase
	DisplayProperties           DisplayProperties          `json:"displayProperties"`
	PlaceHash                   uint32                     `json:"placeHash"`
	DefaultFreeroamActivityHash uint32                     `json:"defaultFreeroamActivityHash"`
	BubbleSettings              []DestinationBubbleSetting `json:"bubbleSettings"`
}

func (DestinationDefinition) EntityType() string { return EntityDestination }

type DestinationBubbleSetting struct {
	DisplayProperties DisplayProperties `json:"displayProperties"`
}

type ClassDefinition struct {
	DefinitionBase
	DisplayProperties  DisplayProperties `json:"displayProperties"`
	ClassType          int32             `json:"classType"`
	GenderedClassNames map[string]string `json:"genderedClassNames"`
}

func (ClassDefinition) EntityType() string { return EntityClass }

type InventoryItemDefinition struct {
	DefinitionBase
	DisplayProperties     DisplayProperties    `json:"displayProperties"`
	ItemTypeDisplayName   string               `json:"itemTypeDisplayName"`
	FlavorText            string               `json:"flavorText"`
	Screenshot            string               `json:"screenshot"`
	ItemType              int32                `json:"itemType"`
	ItemSubType           int32                `json:"itemSubType"`
	ClassType             int32                `json:"classType"`
	Equippable            bool                 `json:"equippable"`
	NonTransferrable      bool                 `json:"nonTransferrable"`
	Inventory             *ItemInventoryBlock  `json:"inventory"`
	DefaultDamageType     int32                `json:"defaultDamageType"`
	DefaultDamageTypeHash *uint32              `json:"defaultDamageTypeHash"`
	ItemCategoryHashes    []uint32             `json:"itemCategoryHashes"`
	TalentGrid            *ItemTalentGridBlock `json:"talentGrid"`
}

func (InventoryItemDefinition) EntityType() string { return EntityInventoryItem }

type ItemInventoryBlock struct {
	MaxStackSize   int32  `json:"maxStackSize"`
	BucketTypeHash uint32 `json:"bucketTypeHash"`
	TierTypeHash   uint32 `json:"tierTypeHash"`
	TierTypeName   string `json:"tierTypeName"`
	IsInstanceItem bool   `json:"isInstanceItem"`
}

type ItemTalentGridBlock struct {
	TalentGridHash   uint32 `json:"talentGridHash"`
	ItemDetailString string `json:"itemDetailString"`
	BuildName        string `json:"buildName"`
	HUDDamageType    int32  `json:"hudDamageType"`
	HUDIcon          string `json:"hudIcon"`
}

type VendorDefinition struct {
	DefinitionBase
	DisplayProperties VendorDisplayProperties `json:"displayProperties"`
	BuyString         string                  `json:"buyString"`
	SellString        string                  `json:"sellString"`
	DisplayItemHash   uint32                  `json:"displayItemHash"`
	InhibitBuying     bool                    `json:"inhibitBuying"`
	InhibitSelling    bool                    `json:"inhibitSelling"`
	FactionHash       uint32                  `json:"factionHash"`
	Enabled           bool                    `json:"enabled"`
	Visible           bool                    `json:"visible"`
	VendorIdentifier  string                  `json:"vendorIdentifier"`
	Locations         []VendorLocation        `json:"locations"`
}

func (VendorDefinition) EntityType() string { return EntityVendor }

type VendorDisplayProperties struct {
	DisplayProperties
	LargeIcon            string `json:"largeIcon"`
	Subtitle             string `json:"subtitle"`
	OriginalIcon         string `json:"originalIcon"`
	SmallTransparentIcon string `json:"smallTransparentIcon"`
	MapIcon              string `json:"mapIcon"`
}

type VendorLocation struct {
	DestinationHash     uint32 `json:"destinationHash"`
	BackgroundImagePath string `json:"backgroundImagePath"`
}

type ProgressionDefinition struct {
	DefinitionBase
	DisplayProperties DisplayProperties `json:"displayProperties"`
	Scope             int32             `json:"scope"`
	RepeatLastStep    bool              `json:"repeatLastStep"`
	Source            string            `json:"source"`
	Steps             []ProgressionStep `json:"steps"`
	Visible           bool              `json:"visible"`
	FactionHash       *uint32           `json:"factionHash"`
}

func (ProgressionDefinition) EntityType() string { return EntityProgression }

type ProgressionStep struct {
	StepName          string `json:"stepName"`
	DisplayEffectType int32  `json:"displayEffectType"`
	ProgressTotal     int32  `json:"progressTotal"`
	Icon              string `json:"icon"`
}

type PresentationNodeDefinition struct {
	DefinitionBase
	DisplayProperties    DisplayProperties        `json:"displayProperties"`
	OriginalIcon         string                   `json:"originalIcon"`
	RootViewIcon         string                   `json:"rootViewIcon"`
	NodeType             int32                    `json:"nodeType"`
	Scope                int32                    `json:"scope"`
	ObjectiveHash        *uint32                  `json:"objectiveHash"`
	CompletionRecordHash *uint32                  `json:"completionRecordHash"`
	Children             PresentationNodeChildren `json:"children"`
	ParentNodeHashes     []uint32                 `json:"parentNodeHashes"`
}

func (PresentationNodeDefinition) EntityType() string { return EntityPresentationNode }

type PresentationNodeChildren struct {
	PresentationNodes []PresentationChild `json:"presentationNodes"`
	Collectibles      []PresentationChild `json:"collectibles"`
	Records           []PresentationChild `json:"records"`
	Metrics           []PresentationChild `json:"metrics"`
}

// PresentationChild holds exactly one of the hashes, depending on the list it is in.
type PresentationChild struct {
	PresentationNodeHash uint32 `json:"presentationNodeHash,omitempty"`
	CollectibleHash      uint32 `json:"collectibleHash,omitempty"`
	RecordHash           uint32 `json:"recordHash,omitempty"`
	MetricHash           uint32 `json:"metricHash,omitempty"`
}

type RecordDefinition struct {
	DefinitionBase
	DisplayProperties DisplayProperties `json:"displayProperties"`
	Scope             int32             `json:"scope"`
	ObjectiveHashes   []uint32          `json:"objectiveHashes"`
	RecordValueStyle  int32             `json:"recordValueStyle"`
	ForTitleGilding   bool              `json:"forTitleGilding"`
	ParentNodeHashes  []uint32          `json:"parentNodeHashes"`
	TitleInfo         *RecordTitleBlock `json:"titleInfo"`
}

func (RecordDefinition) EntityType() string { return EntityRecord }

type RecordTitleBlock struct {
	HasTitle                  bool              `json:"hasTitle"`
	TitlesByGender            map[string]string `json:"titlesByGender"`
	GildingTrackingRecordHash *uint32           `json:"gildingTrackingRecordHash"`
}

type TalentGridDefinition struct {
	DefinitionBase
	MaxGridLevel       int32        `json:"maxGridLevel"`
	GridLevelPerColumn int32        `json:"gridLevelPerColumn"`
	ProgressionHash    uint32       `json:"progressionHash"`
	Nodes              []TalentNode `json:"nodes"`
}

func (TalentGridDefinition) EntityType() string { return EntityTalentGrid }

type TalentNode struct {
	NodeIndex               int32   `json:"nodeIndex"`
	NodeHash                uint32  `json:"nodeHash"`
	Row                     int32   `json:"row"`
	Column                  int32   `json:"column"`
	PrerequisiteNodeIndexes []int32 `json:"prerequisiteNodeIndexes"`
	BinaryPairNodeIndex     int32   `json:"binaryPairNodeIndex"`
	AutoUnlocks             bool    `json:"autoUnlocks"`
}
