package game

import "testing"

func TestAudioManagerVolume(t *testing.T) {
	sm := NewSettingsManager(nil)
	am := NewAudioManager(NewResourceManager(testFS(t), testAudioContext), sm)

	if am.GetSoundVolume() != 0.8 {
		t.Errorf("GetSoundVolume = %v, want 0.8", am.GetSoundVolume())
	}
	am.SetSoundVolume(2)
	if am.GetSoundVolume() != 1.0 || sm.GetSettings().SoundVolume != 1.0 {
		t.Errorf("volume should be clamped and stored, got %v", am.GetSoundVolume())
	}

	noSettings := NewAudioManager(NewResourceManager(testFS(t), testAudioContext), nil)
	if noSettings.GetSoundVolume() != DefaultSettings().SoundVolume {
		t.Errorf("GetSoundVolume without settings = %v", noSettings.GetSoundVolume())
	}
}

func TestAudioManagerPlaySound_Unavailable(t *testing.T) {
	rm := NewResourceManager(testFS(t), testAudioContext)
	if err := rm.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
		t.Fatalf("LoadResourceConfig failed: %v", err)
	}
	am := NewAudioManager(rm, NewSettingsManager(nil))

	if am.PlaySound("SOUND_UNKNOWN") {
		t.Error("unknown sound must not play")
	}
	if am.PlaySound("SOUND_MISSING") {
		t.Error("missing file must not play")
	}
	am.PreloadSounds("SOUND_MISSING")
	if rm.GetSoundData("SOUND_MISSING") != nil {
		t.Error("failed loads must not be cached")
	}
	if !am.unavailable["SOUND_MISSING"] || !am.unavailable["SOUND_UNKNOWN"] {
		t.Error("failed sounds should be remembered so they are not reloaded on every click")
	}
}

func TestAudioManagerPreloadSounds(t *testing.T) {
	rm := NewResourceManager(testFS(t), testAudioContext)
	if err := rm.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
		t.Fatalf("LoadResourceConfig failed: %v", err)
	}
	am := NewAudioManager(rm, nil)

	am.PreloadSounds("SOUND_CLICK")
	if rm.GetSoundData("SOUND_CLICK") == nil {
		t.Error("preloaded sound should be decoded and cached")
	}
	if am.unavailable["SOUND_CLICK"] {
		t.Error("a decodable sound must not be marked unavailable")
	}
}

func TestAudioManagerPlaySound_Disabled(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetSoundEnabled(false)
	am := NewAudioManager(NewResourceManager(testFS(t), testAudioContext), sm)

	if am.PlaySound("SOUND_SHOT") {
		t.Error("PlaySound should return false when sound is disabled")
	}
}
