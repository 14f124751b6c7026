package bungie

import (
	"strconv"
	"strings"
	"time"
)

// here: MSID means MembershipID

// BungieMembershipType identifies the platform an account lives on.
type BungieMembershipType int32

const (
	MembershipNone       BungieMembershipType = 0
	MembershipXbox       BungieMembershipType = 1
	MembershipPSN        BungieMembershipType = 2
	MembershipSteam      BungieMembershipType = 3
	MembershipBlizzard   BungieMembershipType = 4
	MembershipStadia     BungieMembershipType = 5
	MembershipEpic       BungieMembershipType = 6
	MembershipDemon      BungieMembershipType = 10
	MembershipBungieNext BungieMembershipType = 254
	MembershipAll        BungieMembershipType = -1
)

// ComponentType selects what a profile or character request returns.
type ComponentType int32

const (
	ComponentProfiles              ComponentType = 100
	ComponentProfileProgression    ComponentType = 104
	ComponentCharacters            ComponentType = 200
	ComponentCharacterProgressions ComponentType = 202
	ComponentCharacterActivities   ComponentType = 204
)

func joinComponents(components []ComponentType) string {
	parts := make([]string, len(components))
	for i, c := range components {
		parts[i] = strconv.Itoa(int(c))
	}
	return strings.Join(parts, ",")
}

// /Destiny2/Manifest/
type Manifest struct {
	Version                        string                       `json:"version"`
	MobileAssetContentPath         string                       `json:"mobileAssetContentPath"`
	MobileGearAssetDataBases       []GearAssetDataBase          `json:"mobileGearAssetDataBases"`
	MobileWorldContentPaths        map[string]string            `json:"mobileWorldContentPaths"`
	JSONWorldContentPaths          map[string]string            `json:"jsonWorldContentPaths"`
	JSONWorldComponentContentPaths map[string]map[string]string `json:"jsonWorldComponentContentPaths"`
	MobileClanBannerDatabasePath   string                       `json:"mobileClanBannerDatabasePath"`
	MobileGearCDN                  map[string]string            `json:"mobileGearCDN"`
	IconImagePyramidInfo           []ImagePyramidEntry          `json:"iconImagePyramidInfo"`
}

type GearAssetDataBase struct {
	Version int32  `json:"version"`
	Path    string `json:"path"`
}

type ImagePyramidEntry struct {
	Name   string  `json:"name"`
	Factor float32 `json:"factor"`
}

// WorldContentPath is the sqlite world database path for locale, relative to
// Config.RootURL.
func (m *Manifest) WorldContentPath(locale string) (string, bool) {
	p, ok := m.MobileWorldContentPaths[locale]
	return p, ok && p != ""
}

// ComponentPath is the JSON file holding every entityType definition for locale.
func (m *Manifest) ComponentPath(locale, entityType string) (string, bool) {
	p, ok := m.JSONWorldComponentContentPaths[locale][entityType]
	return p, ok && p != ""
}

// Locales lists the locales the world database is published in.
func (m *Manifest) Locales() []string {
	locales := make([]string, 0, len(m.MobileWorldContentPaths))
	for l := range m.MobileWorldContentPaths {
		locales = append(locales, l)
	}
	return locales
}

// ComponentResponse wraps every profile and character component.
type ComponentResponse[T any] struct {
	Data     T    `json:"data"`
	Privacy  int  `json:"privacy"`
	Disabled bool `json:"disabled,omitempty"`
}

// /Destiny2/{MSType}/Profile/{MSID}/LinkedProfiles/
type LinkedProfiles struct {
	Profiles           []DestinyProfileUserInfo `json:"profiles"`
	BnetMembership     UserInfoCard             `json:"bnetMembership"`
	ProfilesWithErrors []ProfileWithError       `json:"profilesWithErrors"`
}

type UserInfoCard struct {
	SupplementalDisplayName     string                 `json:"supplementalDisplayName"`
	IconPath                    string                 `json:"iconPath"`
	CrossSaveOverride           BungieMembershipType   `json:"crossSaveOverride"`
	ApplicableMembershipTypes   []BungieMembershipType `json:"applicableMembershipTypes"`
	IsPublic                    bool                   `json:"isPublic"`
	MembershipType              BungieMembershipType   `json:"membershipType"`
	MembershipID                string                 `json:"membershipId"`
	DisplayName                 string                 `json:"displayName"`
	BungieGlobalDisplayName     string                 `json:"bungieGlobalDisplayName"`
	BungieGlobalDisplayNameCode *int16                 `json:"bungieGlobalDisplayNameCode"`
}

// BungieName is "name#0123"; the code is zero padded to four digits.
func (u UserInfoCard) BungieName() string {
	if u.BungieGlobalDisplayNameCode == nil {
		return u.BungieGlobalDisplayName
	}
	code := strconv.Itoa(int(*u.BungieGlobalDisplayNameCode))
	// 0 is removed from the start of codes since the data type is an int
	if len(code) < 4 {
		code = strings.Repeat("0", 4-len(code)) + code
	}
	return u.BungieGlobalDisplayName + "#" + code
}

type DestinyProfileUserInfo struct {
	UserInfoCard
	DateLastPlayed     time.Time `json:"dateLastPlayed"`
	IsOverridden       bool      `json:"isOverridden"`
	IsCrossSavePrimary bool      `json:"isCrossSavePrimary"`
}

type ProfileWithError struct {
	ErrorCode PlatformErrorCode `json:"errorCode"`
	InfoCard  UserInfoCard      `json:"infoCard"`
}

// /Destiny2/{MSType}/Profile/{MSID}/?components=...
// Components that were not requested stay nil.
type ProfileResponse struct {
	ResponseMintedTimestamp time.Time                                                    `json:"responseMintedTimestamp"`
	Profile                 *ComponentResponse[ProfileComponent]                         `json:"profile"`
	Characters              *ComponentResponse[map[string]CharacterComponent]            `json:"characters"`
	CharacterActivities     *ComponentResponse[map[string]CharacterActivitiesComponent]  `json:"characterActivities"`
	CharacterProgressions   *ComponentResponse[map[string]CharacterProgressionComponent] `json:"characterProgressions"`
}

type ProfileComponent struct {
	UserInfo       UserInfoCard `json:"userInfo"`
	DateLastPlayed time.Time    `json:"dateLastPlayed"`
	CharacterIDs   []string     `json:"characterIds"`
}

type CharacterComponent struct {
	MembershipID   string    `json:"membershipId"`
	CharacterID    string    `json:"characterId"`
	DateLastPlayed time.Time `json:"dateLastPlayed"`
	Light          int32     `json:"light"`
	ClassHash      uint32    `json:"classHash"`
	ClassType      int32     `json:"classType"`
	RaceHash       uint32    `json:"raceHash"`
	EmblemPath     string    `json:"emblemPath"`
}

type CharacterActivitiesComponent struct {
	DateActivityStarted         time.Time `json:"dateActivityStarted"`
	CurrentActivityHash         uint32    `json:"currentActivityHash"`
	CurrentActivityModeHash     uint32    `json:"currentActivityModeHash"`
	CurrentActivityModeType     *int32    `json:"currentActivityModeType"`
	CurrentPlaylistActivityHash *uint32   `json:"currentPlaylistActivityHash"`
	LastCompletedStoryHash      uint32    `json:"lastCompletedStoryHash"`
}

// /Destiny2/{MSType}/Profile/{MSID}/Character/{charID}/?components=...
type CharacterResponse struct {
	Character    *ComponentResponse[CharacterComponent]            `json:"character"`
	Activities   *ComponentResponse[CharacterActivitiesComponent]  `json:"activities"`
	Progressions *ComponentResponse[CharacterProgressionComponent] `json:"progressions"`
}

type CharacterProgressionComponent struct {
	Progressions map[string]ProgressionInfo `json:"progressions"`
	Milestones   map[string]Milestone       `json:"milestones"`
}

type ProgressionInfo struct {
	ProgressionHash     uint32 `json:"progressionHash"`
	DailyProgress       int32  `json:"dailyProgress"`
	WeeklyProgress      int32  `json:"weeklyProgress"`
	CurrentProgress     int32  `json:"currentProgress"`
	Level               int32  `json:"level"`
	LevelCap            int32  `json:"levelCap"`
	ProgressToNextLevel int32  `json:"progressToNextLevel"`
	NextLevelAt         int32  `json:"nextLevelAt"`
}

type Milestone struct {
	MilestoneHash uint32              `json:"milestoneHash"`
	Activities    []MilestoneActivity `json:"activities"`
	StartDate     *time.Time          `json:"startDate"`
	EndDate       *time.Time          `json:"endDate"`
}

type MilestoneActivity struct {
	ActivityHash uint32                   `json:"activityHash"`
	Phases       []MilestoneActivityPhase `json:"phases"`
}

type MilestoneActivityPhase struct {
	Complete  bool   `json:"complete"`
	PhaseHash uint32 `json:"phaseHash"`
}
