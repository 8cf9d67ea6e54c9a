// Package tray implements the system tray control surface: the animated
// icon sink and the menu that switches metric, speed, and theme.
package tray

import (
	"fmt"

	"github.com/getlantern/systray"

	"runcat/internal/engine"
	"runcat/internal/metrics"
	"runcat/internal/schedule"
	"runcat/internal/utils"
	"runcat/internal/version"
)

// IconRenderer emits animation frames to the tray icon. It satisfies
// engine.Renderer; systray.SetIcon is fast and never reports failure.
type IconRenderer struct{}

// Render sets the tray icon to the given ICO bytes.
func (IconRenderer) Render(frame []byte) error {
	systray.SetIcon(frame)
	return nil
}

// Run starts the tray event loop. setup runs once the tray is ready and
// should start the engine; teardown runs when the tray exits. Run blocks
// until Quit.
func Run(eng *engine.Engine, logger *utils.Logger, setup func() error, teardown func()) {
	onReady := func() {
		systray.SetTitle("RunCat")
		systray.SetTooltip(fmt.Sprintf("RunCat %s", version.String()))

		if err := setup(); err != nil {
			logger.Writef("Tray: startup failed: %v", err)
			systray.Quit()
			return
		}

		st := eng.Status()

		mCPU := systray.AddMenuItemCheckbox("CPU", "Animate at processor load", st.Metric == metrics.KindCPU)
		mMemory := systray.AddMenuItemCheckbox("Memory", "Animate at memory pressure", st.Metric == metrics.KindMemory)
		mNetwork := systray.AddMenuItemCheckbox("Network", "Animate at network throughput", st.Metric == metrics.KindNetwork)
		systray.AddSeparator()
		mSlow := systray.AddMenuItemCheckbox("Slow", "1.5x base interval", st.Speed == schedule.SpeedSlow)
		mMedium := systray.AddMenuItemCheckbox("Medium", "1.0x base interval", st.Speed == schedule.SpeedMedium)
		mFast := systray.AddMenuItemCheckbox("Fast", "0.5x base interval", st.Speed == schedule.SpeedFast)
		systray.AddSeparator()
		mDark := systray.AddMenuItemCheckbox("Dark Theme", "Toggle dark frame set", st.DarkMode)
		systray.AddSeparator()
		mQuit := systray.AddMenuItem("Quit", "Stop RunCat")

		// refresh re-reads the current selection so the checkmarks always
		// reflect state rather than what a handler believed it set.
		refresh := func() {
			st := eng.Status()
			setChecked(mCPU, st.Metric == metrics.KindCPU)
			setChecked(mMemory, st.Metric == metrics.KindMemory)
			setChecked(mNetwork, st.Metric == metrics.KindNetwork)
			setChecked(mSlow, st.Speed == schedule.SpeedSlow)
			setChecked(mMedium, st.Speed == schedule.SpeedMedium)
			setChecked(mFast, st.Speed == schedule.SpeedFast)
			setChecked(mDark, st.DarkMode)
		}

		go func() {
			for {
				select {
				case <-mCPU.ClickedCh:
					changeMetric(eng, logger, metrics.KindCPU)
				case <-mMemory.ClickedCh:
					changeMetric(eng, logger, metrics.KindMemory)
				case <-mNetwork.ClickedCh:
					changeMetric(eng, logger, metrics.KindNetwork)
				case <-mSlow.ClickedCh:
					changeSpeed(eng, logger, schedule.SpeedSlow)
				case <-mMedium.ClickedCh:
					changeSpeed(eng, logger, schedule.SpeedMedium)
				case <-mFast.ClickedCh:
					changeSpeed(eng, logger, schedule.SpeedFast)
				case <-mDark.ClickedCh:
					dark := !eng.Status().DarkMode
					if err := eng.ChangeTheme(dark); err != nil {
						logger.Writef("Tray: theme switch failed: %v", err)
					}
				case <-mQuit.ClickedCh:
					logger.Write("Tray: Quit")
					systray.Quit()
					return
				}
				refresh()
			}
		}()
	}

	onExit := func() {
		teardown()
	}

	systray.Run(onReady, onExit)
}

// Quit asks the tray loop to exit; used by signal handlers.
func Quit() {
	systray.Quit()
}

func changeMetric(eng *engine.Engine, logger *utils.Logger, kind metrics.Kind) {
	if err := eng.ChangeMetric(kind); err != nil {
		logger.Writef("Tray: metric switch failed: %v", err)
	}
}

func changeSpeed(eng *engine.Engine, logger *utils.Logger, sp schedule.Speed) {
	if err := eng.ChangeSpeed(sp); err != nil {
		logger.Writef("Tray: speed switch failed: %v", err)
	}
}

func setChecked(item *systray.MenuItem, checked bool) {
	if checked {
		item.Check()
		return
	}
	item.Uncheck()
}
