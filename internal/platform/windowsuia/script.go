package windowsuia

// uiaCaptureScript is the PowerShell program sent via -EncodedCommand to
// walk a window's UI Automation tree. It builds one CacheRequest holding
// every property read downstream over the raw view of the full subtree,
// fetches the root element with FromHandle while the request is active,
// refreshes it with GetUpdatedCache, and prints
// the flat pre-order node list as a JSON array on stdout.
//
// Arguments arrive via the $env:CUP_ARGS JSON blob: {hwnds:[..],
// maxDepth:n}. Errors print a single ERROR:<msg> line.
const uiaCaptureScript = `
$ErrorActionPreference = "Stop"
Add-Type -AssemblyName UIAutomationClient
Add-Type -AssemblyName UIAutomationTypes

try {
  $req = [System.Windows.Automation.CacheRequest]::new()
  $props = @(
    [System.Windows.Automation.AutomationElement]::ControlTypeProperty,
    [System.Windows.Automation.AutomationElement]::NameProperty,
    [System.Windows.Automation.AutomationElement]::BoundingRectangleProperty,
    [System.Windows.Automation.AutomationElement]::IsEnabledProperty,
    [System.Windows.Automation.AutomationElement]::HasKeyboardFocusProperty,
    [System.Windows.Automation.AutomationElement]::IsOffscreenProperty,
    [System.Windows.Automation.AutomationElement]::AutomationIdProperty,
    [System.Windows.Automation.AutomationElement]::ClassNameProperty,
    [System.Windows.Automation.AutomationElement]::HelpTextProperty,
    [System.Windows.Automation.AutomationElement]::OrientationProperty,
    [System.Windows.Automation.AutomationElement]::IsRequiredForFormProperty,
    [System.Windows.Automation.AutomationElement]::IsInvokePatternAvailableProperty,
    [System.Windows.Automation.AutomationElement]::IsTogglePatternAvailableProperty,
    [System.Windows.Automation.AutomationElement]::IsExpandCollapsePatternAvailableProperty,
    [System.Windows.Automation.AutomationElement]::IsValuePatternAvailableProperty,
    [System.Windows.Automation.AutomationElement]::IsSelectionItemPatternAvailableProperty,
    [System.Windows.Automation.AutomationElement]::IsScrollPatternAvailableProperty,
    [System.Windows.Automation.AutomationElement]::IsRangeValuePatternAvailableProperty,
    [System.Windows.Automation.TogglePattern]::ToggleStateProperty,
    [System.Windows.Automation.ExpandCollapsePattern]::ExpandCollapseStateProperty,
    [System.Windows.Automation.SelectionItemPattern]::IsSelectedProperty,
    [System.Windows.Automation.ValuePattern]::IsReadOnlyProperty,
    [System.Windows.Automation.ValuePattern]::ValueProperty,
    [System.Windows.Automation.RangeValuePattern]::MinimumProperty,
    [System.Windows.Automation.RangeValuePattern]::MaximumProperty,
    [System.Windows.Automation.RangeValuePattern]::ValueProperty,
    [System.Windows.Automation.WindowPattern]::IsModalProperty,
    [System.Windows.Automation.AutomationElement]::AriaRoleProperty,
    [System.Windows.Automation.AutomationElement]::AriaPropertiesProperty
  )
  foreach ($p in $props) { $req.Add($p) }
  $req.TreeScope = [System.Windows.Automation.TreeScope]::Element -bor [System.Windows.Automation.TreeScope]::Descendants
  $req.AutomationElementMode = [System.Windows.Automation.AutomationElementMode]::None
  $req.TreeFilter = [System.Windows.Automation.Automation]::RawViewCondition

  function Get-CachedProp($el, $prop, $default) {
    $v = $el.GetCachedPropertyValue($prop, $true)
    if ($v -eq [System.Windows.Automation.AutomationElement]::NotSupported) { return $default }
    if ($null -eq $v) { return $default }
    return $v
  }

  $args = $env:CUP_ARGS | ConvertFrom-Json
  $nodes = [System.Collections.Generic.List[object]]::new()

  foreach ($hwnd in $args.hwnds) {
    try {
      $root = $null
      $c = $req.Activate()
      try {
        $root = [System.Windows.Automation.AutomationElement]::FromHandle([IntPtr]$hwnd)
      } finally { $c.Dispose() }
      if ($null -eq $root) { continue }

      $stack = [System.Collections.Generic.Stack[object]]::new()
      $cached = $root.GetUpdatedCache($req)
      $stack.Push(@($cached, 0))
      while ($stack.Count -gt 0) {
        $pair = $stack.Pop()
        $el = $pair[0]; $depth = $pair[1]
        if ($args.maxDepth -gt 0 -and $depth -ge $args.maxDepth) { continue }

        $rect = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::BoundingRectangleProperty) ([System.Windows.Rect]::Empty)
        $nodes.Add(@{
          d     = $depth
          hwnd  = [int64]$hwnd
          ct    = (Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::ControlTypeProperty) $null).Id
          name  = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::NameProperty) ""
          auto  = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::AutomationIdProperty) ""
          cls   = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::ClassNameProperty) ""
          help  = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::HelpTextProperty) ""
          x     = [int]$rect.X; y = [int]$rect.Y; w = [int]$rect.Width; h = [int]$rect.Height
          en    = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::IsEnabledProperty) $true
          foc   = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::HasKeyboardFocusProperty) $false
          off   = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::IsOffscreenProperty) $false
          req   = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::IsRequiredForFormProperty) $false
          ori   = [int](Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::OrientationProperty) 0)
          inv   = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::IsInvokePatternAvailableProperty) $false
          tog   = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::IsTogglePatternAvailableProperty) $false
          exp   = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::IsExpandCollapsePatternAvailableProperty) $false
          val   = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::IsValuePatternAvailableProperty) $false
          sel   = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::IsSelectionItemPatternAvailableProperty) $false
          scr   = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::IsScrollPatternAvailableProperty) $false
          rng   = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::IsRangeValuePatternAvailableProperty) $false
          togS  = [int](Get-CachedProp $el ([System.Windows.Automation.TogglePattern]::ToggleStateProperty) 0)
          expS  = [int](Get-CachedProp $el ([System.Windows.Automation.ExpandCollapsePattern]::ExpandCollapseStateProperty) 3)
          isSel = Get-CachedProp $el ([System.Windows.Automation.SelectionItemPattern]::IsSelectedProperty) $false
          ro    = Get-CachedProp $el ([System.Windows.Automation.ValuePattern]::IsReadOnlyProperty) $true
          value = Get-CachedProp $el ([System.Windows.Automation.ValuePattern]::ValueProperty) ""
          rmin  = [double](Get-CachedProp $el ([System.Windows.Automation.RangeValuePattern]::MinimumProperty) 0)
          rmax  = [double](Get-CachedProp $el ([System.Windows.Automation.RangeValuePattern]::MaximumProperty) 0)
          rval  = [double](Get-CachedProp $el ([System.Windows.Automation.RangeValuePattern]::ValueProperty) 0)
          modal = Get-CachedProp $el ([System.Windows.Automation.WindowPattern]::IsModalProperty) $false
          aria  = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::AriaRoleProperty) ""
          ariaP = Get-CachedProp $el ([System.Windows.Automation.AutomationElement]::AriaPropertiesProperty) ""
        })

        $children = $el.CachedChildren
        for ($i = $children.Count - 1; $i -ge 0; $i--) {
          $stack.Push(@($children[$i], $depth + 1))
        }
      }
    } catch {
      # window died or denied access: contribute nothing, keep going
      continue
    }
  }

  $nodes | ConvertTo-Json -Depth 4 -Compress
} catch {
  Write-Output ("ERROR:" + $_.Exception.Message)
}
`

// uiaWindowsScript enumerates top-level windows with title, pid, and
// bounds, one JSON array on stdout.
const uiaWindowsScript = `
$ErrorActionPreference = "Stop"
Add-Type @"
using System;
using System.Collections.Generic;
using System.Runtime.InteropServices;
using System.Text;
public static class CupWin {
  public delegate bool EnumProc(IntPtr hWnd, IntPtr lParam);
  [DllImport("user32.dll")] public static extern bool EnumWindows(EnumProc cb, IntPtr lParam);
  [DllImport("user32.dll")] public static extern bool IsWindowVisible(IntPtr hWnd);
  [DllImport("user32.dll")] public static extern int GetWindowTextLength(IntPtr hWnd);
  [DllImport("user32.dll")] public static extern int GetWindowText(IntPtr hWnd, StringBuilder sb, int max);
  [DllImport("user32.dll")] public static extern uint GetWindowThreadProcessId(IntPtr hWnd, out uint pid);
  [DllImport("user32.dll")] public static extern IntPtr GetForegroundWindow();
  [DllImport("user32.dll")] public static extern bool GetWindowRect(IntPtr hWnd, out RECT rect);
  [DllImport("user32.dll")] public static extern int GetSystemMetrics(int index);
  [StructLayout(LayoutKind.Sequential)] public struct RECT { public int L, T, R, B; }
  public static List<object[]> List() {
    var outp = new List<object[]>();
    IntPtr fg = GetForegroundWindow();
    EnumWindows((h, l) => {
      if (!IsWindowVisible(h)) return true;
      int n = GetWindowTextLength(h);
      if (n == 0) return true;
      var sb = new StringBuilder(n + 1);
      GetWindowText(h, sb, sb.Capacity);
      uint pid; GetWindowThreadProcessId(h, out pid);
      RECT r; GetWindowRect(h, out r);
      outp.Add(new object[] { h.ToInt64(), sb.ToString(), (int)pid, h == fg, r.L, r.T, r.R - r.L, r.B - r.T });
      return true;
    }, IntPtr.Zero);
    return outp;
  }
}
"@
$rows = [CupWin]::List() | ForEach-Object {
  @{ hwnd = $_[0]; title = $_[1]; pid = $_[2]; fg = $_[3]; x = $_[4]; y = $_[5]; w = $_[6]; h = $_[7] }
}
@{
  screenW = [CupWin]::GetSystemMetrics(0)
  screenH = [CupWin]::GetSystemMetrics(1)
  windows = @($rows)
} | ConvertTo-Json -Depth 3 -Compress
`

// uiaActionScript re-walks the raw-view subtree of one window to the
// node's emission index and performs the requested pattern action.
// Prints OK:<msg>, BOUNDS:<x>,<y> (asking the caller to click with
// SendInput), FALLBACK:focus+enter, or ERROR:<msg>.
const uiaActionScript = `
$ErrorActionPreference = "Stop"
Add-Type -AssemblyName UIAutomationClient
Add-Type -AssemblyName UIAutomationTypes

try {
  $args = $env:CUP_ARGS | ConvertFrom-Json
  $root = [System.Windows.Automation.AutomationElement]::FromHandle([IntPtr]$args.hwnd)
  if ($null -eq $root) { Write-Output "ERROR:window no longer exists"; exit }

  # Re-walk in the same pre-order as the capture to find the node index.
  $walker = [System.Windows.Automation.TreeWalker]::RawViewWalker
  $target = $null
  $idx = 0
  $stack = [System.Collections.Generic.Stack[object]]::new()
  $stack.Push($root)
  while ($stack.Count -gt 0) {
    $el = $stack.Pop()
    if ($idx -eq $args.index) { $target = $el; break }
    $idx++
    $kids = @()
    $c = $walker.GetFirstChild($el)
    while ($null -ne $c) { $kids += $c; $c = $walker.GetNextSibling($c) }
    for ($i = $kids.Count - 1; $i -ge 0; $i--) { $stack.Push($kids[$i]) }
  }
  if ($null -eq $target) { Write-Output "ERROR:element index no longer resolves"; exit }

  switch ($args.action) {
    "invoke" {
      $p = $target.GetCurrentPattern([System.Windows.Automation.InvokePattern]::Pattern)
      if ($null -ne $p) { $p.Invoke(); Write-Output "OK:invoked"; exit }
      $rect = $target.Current.BoundingRectangle
      if (-not $rect.IsEmpty) {
        Write-Output ("BOUNDS:" + [int]($rect.X + $rect.Width / 2) + "," + [int]($rect.Y + $rect.Height / 2)); exit
      }
      $target.SetFocus(); Write-Output "FALLBACK:focus+enter"
    }
    "toggle" {
      $p = $target.GetCurrentPattern([System.Windows.Automation.TogglePattern]::Pattern)
      $p.Toggle(); Write-Output "OK:toggled"
    }
    "expand" {
      $p = $target.GetCurrentPattern([System.Windows.Automation.ExpandCollapsePattern]::Pattern)
      $p.Expand(); Write-Output "OK:expanded"
    }
    "collapse" {
      $p = $target.GetCurrentPattern([System.Windows.Automation.ExpandCollapsePattern]::Pattern)
      $p.Collapse(); Write-Output "OK:collapsed"
    }
    "select" {
      $p = $target.GetCurrentPattern([System.Windows.Automation.SelectionItemPattern]::Pattern)
      $p.Select(); Write-Output "OK:selected"
    }
    "setvalue" {
      $p = $target.GetCurrentPattern([System.Windows.Automation.ValuePattern]::Pattern)
      $p.SetValue($args.value); Write-Output "OK:value set"
    }
    "focus" { $target.SetFocus(); Write-Output "OK:focused" }
    "increment" {
      $p = $target.GetCurrentPattern([System.Windows.Automation.RangeValuePattern]::Pattern)
      $p.SetValue($p.Current.Value + $p.Current.SmallChange); Write-Output "OK:incremented"
    }
    "decrement" {
      $p = $target.GetCurrentPattern([System.Windows.Automation.RangeValuePattern]::Pattern)
      $p.SetValue($p.Current.Value - $p.Current.SmallChange); Write-Output "OK:decremented"
    }
    "bounds" {
      $rect = $target.Current.BoundingRectangle
      if ($rect.IsEmpty) { Write-Output "ERROR:element has no bounds"; exit }
      Write-Output ("BOUNDS:" + [int]($rect.X + $rect.Width / 2) + "," + [int]($rect.Y + $rect.Height / 2))
    }
    default { Write-Output ("ERROR:unsupported action " + $args.action) }
  }
} catch {
  Write-Output ("ERROR:" + $_.Exception.Message)
}
`

// uiaInputScript performs raw input: click at coordinates, type text,
// key combos, scroll. Driven by $env:CUP_ARGS.
const uiaInputScript = `
$ErrorActionPreference = "Stop"
Add-Type @"
using System;
using System.Runtime.InteropServices;
public static class CupInput {
  [DllImport("user32.dll")] public static extern bool SetCursorPos(int x, int y);
  [DllImport("user32.dll")] public static extern void mouse_event(uint flags, int dx, int dy, int data, UIntPtr extra);
  [DllImport("user32.dll")] public static extern void keybd_event(byte vk, byte scan, uint flags, UIntPtr extra);
  public const uint LEFTDOWN = 0x02, LEFTUP = 0x04, RIGHTDOWN = 0x08, RIGHTUP = 0x10, WHEEL = 0x0800, HWHEEL = 0x1000;
  public const uint KEYUP = 0x02;
}
"@
Add-Type -AssemblyName System.Windows.Forms

$args = $env:CUP_ARGS | ConvertFrom-Json
try {
  switch ($args.op) {
    "click" {
      [CupInput]::SetCursorPos($args.x, $args.y) | Out-Null
      Start-Sleep -Milliseconds 20
      $down = [CupInput]::LEFTDOWN; $up = [CupInput]::LEFTUP
      if ($args.button -eq "right") { $down = [CupInput]::RIGHTDOWN; $up = [CupInput]::RIGHTUP }
      for ($i = 0; $i -lt $args.count; $i++) {
        [CupInput]::mouse_event($down, 0, 0, 0, [UIntPtr]::Zero)
        [CupInput]::mouse_event($up, 0, 0, 0, [UIntPtr]::Zero)
      }
      Write-Output "OK:clicked"
    }
    "type" {
      [System.Windows.Forms.SendKeys]::SendWait($args.text)
      Write-Output "OK:typed"
    }
    "keys" {
      [System.Windows.Forms.SendKeys]::SendWait($args.combo)
      Write-Output "OK:keys sent"
    }
    "scroll" {
      [CupInput]::SetCursorPos($args.x, $args.y) | Out-Null
      if ($args.axis -eq "h") {
        [CupInput]::mouse_event([CupInput]::HWHEEL, 0, 0, $args.delta, [UIntPtr]::Zero)
      } else {
        [CupInput]::mouse_event([CupInput]::WHEEL, 0, 0, $args.delta, [UIntPtr]::Zero)
      }
      Write-Output "OK:scrolled"
    }
    "foreground" {
      Add-Type -AssemblyName UIAutomationClient
      $sig = '[DllImport("user32.dll")] public static extern bool SetForegroundWindow(IntPtr h);'
      $fg = Add-Type -MemberDefinition $sig -Name Fg -Namespace CupFg -PassThru
      $fg::SetForegroundWindow([IntPtr]$args.hwnd) | Out-Null
      Write-Output "OK:foregrounded"
    }
    default { Write-Output ("ERROR:unknown op " + $args.op) }
  }
} catch {
  Write-Output ("ERROR:" + $_.Exception.Message)
}
`
