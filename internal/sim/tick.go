package sim

import (
	"context"
	"fmt"
	"time"

	"skyhunter/internal/combat"
	"skyhunter/internal/enemy"
	"skyhunter/internal/game"
	"skyhunter/internal/logging"
	"skyhunter/internal/telemetry"
	"skyhunter/internal/vecmath"
)

// Run starts the simulation loop and stops when the context is done. Each
// wall-clock tick advances the world by the tick interval.
func (s *Simulator) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting simulator", "tick_interval", s.tickInterval, "session", s.session)
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Step(ctx, s.tickInterval.Seconds())
		case <-ctx.Done():
			log.Info("stopping simulator")
			return
		}
	}
}

// RunTicks advances up to n ticks of dt seconds as fast as possible. It stops
// early at game over or when ctx is done and returns the ticks executed.
func (s *Simulator) RunTicks(ctx context.Context, n int, dt float64) int {
	done := 0
	for done < n {
		if ctx.Err() != nil {
			break
		}
		if !s.Step(ctx, dt) {
			break
		}
		done++
	}
	return done
}

// Step runs one tick and reports whether the world advanced. Paused and
// finished sessions do not advance.
func (s *Simulator) Step(ctx context.Context, dt float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.machine.Running() {
		return false
	}
	s.step(ctx, dt)
	return true
}

// step advances the world in a fixed order: player control, spawning, AI,
// firing, projectile flight, collisions, pickups, session clock, rules.
func (s *Simulator) step(ctx context.Context, dt float64) {
	log := logging.FromContext(ctx)
	s.tick++
	s.elapsed += dt
	fx := s.powerups.Active()

	trigger := s.autopilot.Fly(s.player, s.engine.Enemies, s.targetPositions(), fx.SpeedMultiplier, dt)

	if s.cfg.EnemiesEnabled() {
		spawned := s.spawner.Update(dt, s.engine.Live(), s.player.Transform, s.stats.Difficulty)
		if len(spawned) > 1 {
			s.addFormation(spawned)
		} else {
			s.engine.Add(spawned...)
		}
	}

	view := s.player.View()
	res := s.engine.Step(view, dt, s.elapsed)

	s.bullets = append(s.bullets, combat.EnemyFire(s.engine.Enemies, view, dt, s.rand)...)
	s.bullets = append(s.bullets, combat.PlayerFire(s.player, fx, trigger, dt)...)
	s.bullets = combat.Advance(s.bullets, dt)

	var out combat.Outcome
	s.resolver.PlayerBullets(s.bullets, s.engine.Enemies, s.elapsed, &out)
	s.resolver.EnemyBullets(s.bullets, s.player, fx, &out)
	s.resolver.Rams(s.engine.Enemies, s.player, s.elapsed, &out)
	s.bullets = combat.Sweep(s.bullets)
	s.engine.Prune()

	if s.cfg.PowerUpsEnabled() {
		s.powerups.Update(dt, s.elapsed, s.player.Position())
		for _, t := range s.powerups.Collect(s.player, &s.stats) {
			s.logEvent("powerup", string(t))
		}
	}
	if s.cfg.TargetsEnabled() {
		s.targets.Update(dt, s.elapsed, s.player.Position())
		for _, hit := range s.targets.Collect(s.player, &s.stats, s.timer, s.elapsed) {
			s.logEvent("target", fmt.Sprintf("%s +%d", hit.Type, hit.Points))
		}
	}

	s.stats.Advance(dt, s.difficulty)
	s.timer.Tick(dt)
	if reason, over := s.ruleset.Over(&s.stats, s.timer); over {
		s.machine.GameOver(reason)
	}
	if s.machine.State() == game.GameOver {
		coins := s.stats.Settle()
		s.logEvent("game_over", s.machine.Reason())
		log.Info("game over", "reason", s.machine.Reason(), "score", s.stats.Score, "coins", coins, "tick", s.tick)
	}

	s.write(ctx, out.Destroyed, res.Chatter, append(s.pendingFormation, res.Formation...))
	s.pendingFormation = nil
}

// addFormation registers a leader and its wingmen and queues the formed
// events.
func (s *Simulator) addFormation(group []*enemy.Enemy) {
	s.engine.Add(group...)
	leader := group[0]
	for _, w := range group[1:] {
		s.pendingFormation = append(s.pendingFormation, enemy.FormationEvent{Kind: enemy.FormationFormed, EnemyID: w.ID, LeaderID: leader.ID})
	}
}

func (s *Simulator) targetPositions() []vecmath.Vec3 {
	if !s.cfg.TargetsEnabled() {
		return nil
	}
	out := make([]vecmath.Vec3, len(s.targets.Targets))
	for i, t := range s.targets.Targets {
		out[i] = t.Position
	}
	return out
}

// write hands the tick's rows to the configured writers. A failing writer
// is logged and never stops the simulation.
func (s *Simulator) write(ctx context.Context, kills []enemy.DestroyedEvent, chatter []enemy.ChatterEvent, formation []enemy.FormationEvent) {
	log := logging.FromContext(ctx)
	ts := s.now().UTC()

	if s.writer != nil {
		if err := s.writer.WriteStats(s.statsRow()); err != nil {
			log.Error("stats write failed", "err", err, "tick", s.tick)
		}
		if ew, ok := s.writer.(EnemySnapshotWriter); ok {
			if err := ew.WriteEnemies(s.enemyRows()); err != nil {
				log.Error("enemy snapshot write failed", "err", err)
			}
		}
	}

	killRows := make([]telemetry.KillRow, 0, len(kills))
	for _, k := range kills {
		killRows = append(killRows, s.recorder.Kill(k, ts))
		s.logEvent("kill", fmt.Sprintf("%s %s (%s) +%d", k.Type, short(k.EnemyID), k.Cause, k.Points))
	}
	chatterRows := make([]telemetry.ChatterRow, 0, len(chatter))
	for _, c := range chatter {
		chatterRows = append(chatterRows, s.recorder.Chatter(c, ts))
		s.logEvent("chatter", fmt.Sprintf("%s: %s", c.Sender, c.Message))
	}
	s.writeEvents(ctx, killRows, chatterRows)
	s.logFormationEvents(ctx, formation, ts)
}

func (s *Simulator) writeEvents(ctx context.Context, kills []telemetry.KillRow, chatter []telemetry.ChatterRow) {
	if s.eventWriter == nil || len(kills)+len(chatter) == 0 {
		return
	}
	log := logging.FromContext(ctx)
	if bw, ok := s.eventWriter.(batchEventWriter); ok {
		if len(kills) > 0 {
			if err := bw.WriteKills(kills); err != nil {
				log.Error("kill batch write failed", "err", err)
			}
		}
		if len(chatter) > 0 {
			if err := bw.WriteChatters(chatter); err != nil {
				log.Error("chatter batch write failed", "err", err)
			}
		}
		return
	}
	for _, k := range kills {
		if err := s.eventWriter.WriteKill(k); err != nil {
			log.Error("kill write failed", "enemy_id", k.EnemyID, "err", err)
		}
	}
	for _, c := range chatter {
		if err := s.eventWriter.WriteChatter(c); err != nil {
			log.Error("chatter write failed", "enemy_id", c.EnemyID, "err", err)
		}
	}
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
